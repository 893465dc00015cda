package simulator

import (
	"fmt"
	"time"

	"github.com/chrisdamba/lunchrush/internal/factories"
	"github.com/chrisdamba/lunchrush/internal/logger"
	"github.com/chrisdamba/lunchrush/internal/models"
	"go.uber.org/zap"
)

type SeatOutcome int

const (
	SeatSeated SeatOutcome = iota
	SeatNoCustomer
	SeatNoTable
)

func (o SeatOutcome) String() string {
	switch o {
	case SeatSeated:
		return "seated"
	case SeatNoCustomer:
		return "no_customer"
	case SeatNoTable:
		return "no_table"
	default:
		return "unknown"
	}
}

// SeatResult tells the caller what happened to the front of the queue.
type SeatResult struct {
	Outcome  SeatOutcome
	Customer *models.Customer
	Table    *models.Table
}

// Restaurant is the turn engine. All game state lives here and only changes
// through its methods.
type Restaurant struct {
	PlayerName string
	Money      int
	TimeLeft   int
	Duration   int
	Queue      *models.Queue
	Tables     []*models.Table

	rng     RandomSource
	factory *factories.CustomerFactory
	seating SeatingPolicy
	events  *models.EventQueue
	now     func() time.Time
	log     *logger.Logger
}

type Option func(*Restaurant)

func WithRandomSource(rng RandomSource) Option {
	return func(r *Restaurant) { r.rng = rng }
}

func WithSeatingPolicy(policy SeatingPolicy) Option {
	return func(r *Restaurant) { r.seating = policy }
}

func WithCustomerFactory(factory *factories.CustomerFactory) Option {
	return func(r *Restaurant) { r.factory = factory }
}

// WithTimeLeft sets the number of turns the session lasts.
func WithTimeLeft(turns int) Option {
	return func(r *Restaurant) {
		r.TimeLeft = turns
		r.Duration = turns
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Restaurant) { r.now = now }
}

func WithLogger(log *logger.Logger) Option {
	return func(r *Restaurant) { r.log = log }
}

func NewRestaurant(playerName string, opts ...Option) *Restaurant {
	r := &Restaurant{
		PlayerName: playerName,
		TimeLeft:   models.GameDuration,
		Duration:   models.GameDuration,
		Queue:      models.NewQueue(),
		Tables:     make([]*models.Table, 0, len(models.TableCapacities)),
		seating:    BestFit,
		events:     models.NewEventQueue(),
		now:        time.Now,
		log:        logger.NewNop(),
	}
	for _, capacity := range models.TableCapacities {
		r.Tables = append(r.Tables, models.NewTable(capacity))
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = NewRandomSource(0)
	}
	if r.factory == nil {
		r.factory = factories.NewCustomerFactory(r.now().UnixNano())
	}
	return r
}

// Turn is the 1-based number of the turn being played. It stays at the last
// turn once the session is over.
func (r *Restaurant) Turn() int {
	return max(1, min(r.Duration-r.TimeLeft+1, r.Duration))
}

// NewCustomer lets at most one party arrive. Call it once per turn.
func (r *Restaurant) NewCustomer() *models.Customer {
	if r.rng.Float64() >= models.ArrivalProbability {
		return nil
	}
	partySize := models.MinPartySize + r.rng.Intn(models.MaxPartySize-models.MinPartySize+1)
	c := r.factory.CreateCustomer(partySize)
	r.Queue.Add(c)

	r.record(models.EventCustomerArrived, *c)
	r.log.Debug("customer arrived",
		zap.String("customer_id", c.ID),
		zap.Int("party_size", c.PartySize),
		zap.Int("queue_length", r.Queue.Len()),
	)
	return c
}

// SeatNextCustomer seats the party at the front of the queue at the first
// table the seating policy offers that accepts it.
func (r *Restaurant) SeatNextCustomer() SeatResult {
	c := r.Queue.Peek()
	if c == nil {
		r.record(models.EventSeatingFailed, SeatingRecord{Reason: SeatNoCustomer.String()})
		return SeatResult{Outcome: SeatNoCustomer}
	}

	for _, table := range r.seating(r.Tables, c) {
		if !table.SeatParty(c) {
			continue
		}
		r.mustRemove(c)
		r.record(models.EventCustomerSeated, SeatingRecord{Customer: *c, TableCapacity: table.Capacity})
		r.log.Debug("customer seated",
			zap.String("customer_id", c.ID),
			zap.Int("party_size", c.PartySize),
			zap.Int("table_capacity", table.Capacity),
		)
		return SeatResult{Outcome: SeatSeated, Customer: c, Table: table}
	}

	r.record(models.EventSeatingFailed, SeatingRecord{Customer: *c, Reason: SeatNoTable.String()})
	return SeatResult{Outcome: SeatNoTable, Customer: c}
}

// ServeTables gives every seated party one eating tick and banks what the
// finished parties pay.
func (r *Restaurant) ServeTables() int {
	total := 0
	for _, table := range r.Tables {
		c := table.Customer()
		earned := table.Serve()
		if earned > 0 {
			r.record(models.EventTableServed, ServingRecord{Customer: *c, TableCapacity: table.Capacity, Earned: earned})
			r.log.Debug("table finished",
				zap.String("customer_id", c.ID),
				zap.Int("table_capacity", table.Capacity),
				zap.Int("earned", earned),
			)
		}
		total += earned
	}
	r.Money += total
	return total
}

// WaitCustomers makes every queued party wait one tick, then sends the angry
// ones away with a penalty. Decay runs over the whole queue before anyone is
// removed so every customer waits exactly once per call.
func (r *Restaurant) WaitCustomers() []*models.Customer {
	queued := r.Queue.Customers()
	for _, c := range queued {
		c.Wait()
	}

	var departed []*models.Customer
	for _, c := range queued {
		if !c.IsAngry() {
			continue
		}
		r.mustRemove(c)
		penalty := c.PartySize * models.PenaltyPerGuest
		r.Money -= penalty
		departed = append(departed, c)

		r.record(models.EventCustomerLeft, DepartureRecord{Customer: *c, Penalty: penalty})
		r.log.Debug("customer left angry",
			zap.String("customer_id", c.ID),
			zap.Int("anger", c.Anger),
			zap.Int("penalty", penalty),
		)
	}
	return departed
}

// UpdateTime closes the current turn.
func (r *Restaurant) UpdateTime() {
	r.TimeLeft--
}

func (r *Restaurant) GameOver() bool {
	return r.TimeLeft <= 0
}

// EndSession stops the game at the next GameOver check.
func (r *Restaurant) EndSession() {
	r.TimeLeft = 0
}

// RecordSessionEnded adds the closing event of the session to the event log,
// stamped with the last turn the player actually played.
func (r *Restaurant) RecordSessionEnded(lastTurn int, saved bool, timePlayed int) {
	r.recordAt(lastTurn, models.EventSessionEnded, SessionRecord{
		PlayerName: r.PlayerName,
		Money:      r.Money,
		TimePlayed: timePlayed,
		Saved:      saved,
	})
}

// Events exposes the log of events recorded so far; the caller drains it.
func (r *Restaurant) Events() *models.EventQueue {
	return r.events
}

// Snapshot copies the current state for rendering.
func (r *Restaurant) Snapshot() models.Snapshot {
	snapshot := models.Snapshot{
		PlayerName: r.PlayerName,
		Turn:       r.Turn(),
		TimeLeft:   r.TimeLeft,
		Duration:   r.Duration,
		Money:      r.Money,
		Queue:      make([]models.CustomerView, 0, r.Queue.Len()),
		Tables:     make([]models.TableView, 0, len(r.Tables)),
	}
	for _, c := range r.Queue.Customers() {
		snapshot.Queue = append(snapshot.Queue, models.NewCustomerView(c))
	}
	for _, table := range r.Tables {
		view := models.TableView{Capacity: table.Capacity, Status: table.Status()}
		if c := table.Customer(); c != nil {
			cv := models.NewCustomerView(c)
			view.Customer = &cv
			view.EatLeft = c.EatTime
			view.EatTotal = c.PartySize * models.EatTimePerGuest
		}
		snapshot.Tables = append(snapshot.Tables, view)
	}
	return snapshot
}

func (r *Restaurant) record(eventType string, data interface{}) {
	r.recordAt(r.Turn(), eventType, data)
}

func (r *Restaurant) recordAt(turn int, eventType string, data interface{}) {
	r.events.Enqueue(&models.Event{
		Turn: turn,
		Time: r.now(),
		Type: eventType,
		Data: data,
	})
}

// mustRemove takes a customer the restaurant knows is queued out of the
// queue. Failing here means the queue and the caller disagree.
func (r *Restaurant) mustRemove(c *models.Customer) {
	if err := r.Queue.Remove(c); err != nil {
		panic(fmt.Sprintf("restaurant: removing customer %s: %v", c.ID, err))
	}
}
