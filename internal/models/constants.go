package models

const (
	// game rules
	DefaultPatience    = 3
	AngerThreshold     = 2
	EatTimePerGuest    = 2
	EarningsPerGuest   = 5
	PenaltyPerGuest    = 2
	MinPartySize       = 1
	MaxPartySize       = 4
	ArrivalProbability = 0.7
	GameDuration       = 20

	DefaultLeaderboardSize = 50

	DatePlayedLayout = "2006-01-02 15:04:05"

	SeatingPolicyBestFit      = "best_fit"
	SeatingPolicyFirstFit     = "first_fit"
	SeatingPolicyLargestFirst = "largest_first"

	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"

	OutputNone    = "none"
	OutputConsole = "console"
	OutputJSON    = "json"
	OutputKafka   = "kafka"

	TableStatusFree     = "free"
	TableStatusOccupied = "occupied"
)

// TableCapacities lists the tables every restaurant opens with, in construction order.
var TableCapacities = []int{1, 2, 3, 4}
