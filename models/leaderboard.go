// models/leaderboard.go

package models

// LeaderboardEntry is one finished game. Entries are never edited once created.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Level int    `json:"level"`
	Date  string `json:"date"`
}
