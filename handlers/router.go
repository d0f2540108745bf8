// handlers/router.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"show-do-ingles/leaderboard"
	"show-do-ingles/middleware"
	"show-do-ingles/store"
)

// Options carries what the routes need.
type Options struct {
	Games    *store.Games
	Board    *leaderboard.Store
	Cookies  *sessions.CookieStore
	TokenKey []byte
	TokenTTL time.Duration
	// Ping checks the leaderboard storage for /healthz. Nil always reports ok.
	Ping func(ctx context.Context) error
}

// NewRouter builds the HTML screens and the JSON API.
func NewRouter(opts Options) *mux.Router {
	session := middleware.Session(opts.Cookies, opts.TokenKey)

	r := mux.NewRouter()
	r.Use(middleware.Logger)

	r.HandleFunc("/healthz", Health(opts.Ping)).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/leaderboard", GetLeaderboard(opts.Board)).Methods("GET")
	api.Handle("/token", session(IssueToken(opts.TokenKey, opts.TokenTTL))).Methods("POST")

	game := api.PathPrefix("/game").Subrouter()
	game.Use(session)
	game.HandleFunc("", GetGame(opts.Games)).Methods("GET")
	game.HandleFunc("/ws", GameWebSocket(opts.Games)).Methods("GET")
	game.HandleFunc("/{action}", GameAction(opts.Games)).Methods("POST")

	// Page routes (HTML)
	r.Handle("/", session(HomePage(opts.Games, opts.Board))).Methods("GET")
	r.Handle("/{action}", session(PageAction(opts.Games))).Methods("POST")

	return r
}

func sessionID(r *http.Request) string {
	return r.Header.Get(middleware.SessionHeader)
}
