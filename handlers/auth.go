// handlers/auth.go
package handlers

import (
	"log"
	"net/http"
	"time"

	"show-do-ingles/middleware"
)

type TokenResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Token     string `json:"token,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// IssueToken returns a bearer token for the caller's game session, so API
// clients without cookies can keep playing the same game.
func IssueToken(key []byte, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)
		tokenString, err := middleware.IssueToken(key, id, ttl)
		if err != nil {
			log.Printf("token issue: %v", err)
			writeJSON(w, http.StatusInternalServerError, TokenResponse{Message: "Não foi possível criar o token"})
			return
		}
		writeJSON(w, http.StatusOK, TokenResponse{Success: true, Token: tokenString, SessionID: id})
	}
}
