// handlers/game.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"show-do-ingles/game"
	"show-do-ingles/store"
)

// ActionRequest is the optional body of POST /api/game/{action}.
type ActionRequest struct {
	Name   string `json:"name"`
	Option *int   `json:"option"`
}

// GameResponse wraps a session snapshot.
type GameResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	State   game.Snapshot `json:"state"`
}

var errMissingOption = errors.New("option is required")

// actions maps the route name of a transition to the controller call.
var actions = map[string]func(*game.Controller, ActionRequest) bool{
	"start":       func(c *game.Controller, in ActionRequest) bool { return c.StartGame(in.Name) },
	"answer":      func(c *game.Controller, in ActionRequest) bool { return c.Answer(*in.Option) },
	"next":        func(c *game.Controller, _ ActionRequest) bool { return c.NextLevel() },
	"skip":        func(c *game.Controller, _ ActionRequest) bool { return c.Skip() },
	"hint":        func(c *game.Controller, _ ActionRequest) bool { return c.Hint() },
	"stop":        func(c *game.Controller, _ ActionRequest) bool { return c.Stop() },
	"retry":       func(c *game.Controller, _ ActionRequest) bool { return c.Retry() },
	"home":        func(c *game.Controller, _ ActionRequest) bool { return c.Home() },
	"leaderboard": func(c *game.Controller, _ ActionRequest) bool { return c.ShowLeaderboard() },
}

func validateAction(name string, in ActionRequest) error {
	if name == "answer" && in.Option == nil {
		return errMissingOption
	}
	return nil
}

func GetGame(games *store.Games) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl := games.GetOrCreate(sessionID(r))
		writeJSON(w, http.StatusOK, GameResponse{Success: true, State: ctrl.Snapshot()})
	}
}

func GameAction(games *store.Games) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["action"]
		act, ok := actions[name]
		if !ok {
			writeJSON(w, http.StatusNotFound, GameResponse{Message: "Ação desconhecida"})
			return
		}

		var req ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, GameResponse{Message: "Requisição inválida"})
			return
		}
		if err := validateAction(name, req); err != nil {
			writeJSON(w, http.StatusBadRequest, GameResponse{Message: "Informe a opção escolhida"})
			return
		}

		ctrl := games.GetOrCreate(sessionID(r))
		if !act(ctrl, req) {
			writeJSON(w, http.StatusConflict, GameResponse{
				Message: "Ação não permitida agora",
				State:   ctrl.Snapshot(),
			})
			return
		}
		writeJSON(w, http.StatusOK, GameResponse{Success: true, State: ctrl.Snapshot()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
