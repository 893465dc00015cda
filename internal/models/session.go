package models

// Session is one finished game as stored on the leaderboard.
type Session struct {
	ID         int64  `json:"id"`
	PlayerName string `json:"player_name"`
	Money      int    `json:"money"`
	TimePlayed int    `json:"time_played"` // seconds
	DatePlayed string `json:"date_played"`
}
