// store/games.go

// Package store keeps the live game sessions of the server.
package store

import (
	"sync"
	"time"

	"show-do-ingles/game"
)

type entry struct {
	ctrl     *game.Controller
	lastSeen time.Time
}

// Games maps session ids to their controllers.
type Games struct {
	mu      sync.RWMutex
	games   map[string]*entry
	factory func() *game.Controller
	now     func() time.Time
}

// NewGames creates an empty registry. factory builds the controller of a new session.
func NewGames(factory func() *game.Controller) *Games {
	return &Games{
		games:   make(map[string]*entry),
		factory: factory,
		now:     time.Now,
	}
}

// GetOrCreate returns the controller for id, creating it on first use.
func (g *Games) GetOrCreate(id string) *game.Controller {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.games[id]
	if !ok {
		e = &entry{ctrl: g.factory()}
		g.games[id] = e
	}
	e.lastSeen = g.now()
	return e.ctrl
}

// Get retrieves the controller for id without creating one.
func (g *Games) Get(id string) (*game.Controller, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.games[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = g.now()
	return e.ctrl, true
}

// Len returns the number of live sessions.
func (g *Games) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.games)
}

// Sweep drops sessions not touched for maxIdle and returns how many went.
func (g *Games) Sweep(maxIdle time.Duration) int {
	cutoff := g.now().Add(-maxIdle)
	g.mu.Lock()
	defer g.mu.Unlock()
	removed := 0
	for id, e := range g.games {
		if e.lastSeen.Before(cutoff) {
			delete(g.games, id)
			removed++
		}
	}
	return removed
}
