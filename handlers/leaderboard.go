// handlers/leaderboard.go
package handlers

import (
	"net/http"

	"show-do-ingles/leaderboard"
	"show-do-ingles/models"
)

type LeaderboardResponse struct {
	Entries []models.LeaderboardEntry `json:"entries"`
}

func GetLeaderboard(board *leaderboard.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := board.Entries()
		if entries == nil {
			entries = []models.LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
	}
}
