// game/controller.go
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"show-do-ingles/models"
)

// FallbackFetchError is shown when a fetch fails without a player facing message.
const FallbackFetchError = "Ocorreu um erro ao conectar com a IA."

const recordTimeout = 5 * time.Second

// Fetcher produces the question for a level.
type Fetcher interface {
	Generate(ctx context.Context, level int) (models.Question, error)
}

// Recorder receives finished games.
type Recorder interface {
	Record(ctx context.Context, name string, score, level int) (models.LeaderboardEntry, error)
}

// Config tunes a Controller. Zero delays reveal and resolve on the next timer tick.
type Config struct {
	RevealDelay  time.Duration
	ResolveDelay time.Duration
	FetchTimeout time.Duration

	// After runs f once d has elapsed. Defaults to time.AfterFunc.
	After func(d time.Duration, f func())
	// Go runs f concurrently. Defaults to a new goroutine.
	Go func(f func())
}

// Controller owns one game session. It applies the transitions in state.go
// under a lock and runs the effects they return: question fetches, the two
// staged answer timers and the hand-off to the leaderboard.
type Controller struct {
	mu       sync.Mutex
	state    State
	fetcher  Fetcher
	recorder Recorder
	cfg      Config
	subs     map[chan Snapshot]struct{}
}

// NewController returns a controller on the start screen.
func NewController(fetcher Fetcher, recorder Recorder, cfg Config) *Controller {
	if cfg.After == nil {
		cfg.After = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if cfg.Go == nil {
		cfg.Go = func(f func()) { go f() }
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	return &Controller{
		state:    NewState(""),
		fetcher:  fetcher,
		recorder: recorder,
		cfg:      cfg,
		subs:     make(map[chan Snapshot]struct{}),
	}
}

// State returns a copy of the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the player view of the current state.
func (c *Controller) Snapshot() Snapshot {
	return View(c.State())
}

// StartGame starts a new game for name. It reports whether the state changed.
func (c *Controller) StartGame(name string) bool {
	return c.apply(func(s State) (State, Effect) { return StartGame(s, name) })
}

// Answer selects option idx of the current question.
func (c *Controller) Answer(idx int) bool {
	return c.apply(func(s State) (State, Effect) { return SelectAnswer(s, idx) })
}

// NextLevel advances from the explanation.
func (c *Controller) NextLevel() bool {
	return c.apply(NextLevel)
}

// Skip replaces the current question with a new one for the same level.
func (c *Controller) Skip() bool {
	return c.apply(Skip)
}

// Hint reveals the hint of the current question.
func (c *Controller) Hint() bool {
	return c.apply(func(s State) (State, Effect) { return Hint(s), Effect{} })
}

// Stop ends the game keeping the current score.
func (c *Controller) Stop() bool {
	return c.apply(Stop)
}

// Retry repeats a failed fetch.
func (c *Controller) Retry() bool {
	return c.apply(Retry)
}

// ShowLeaderboard switches to the leaderboard screen.
func (c *Controller) ShowLeaderboard() bool {
	return c.apply(func(s State) (State, Effect) { return ShowLeaderboard(s), Effect{} })
}

// Home returns to the start screen.
func (c *Controller) Home() bool {
	return c.apply(func(s State) (State, Effect) { return Home(s), Effect{} })
}

// Subscribe returns a channel receiving a snapshot after every state change.
// Slow subscribers miss intermediate snapshots. Call the returned func to stop.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 4)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, ch)
			c.mu.Unlock()
		})
	}
}

// apply runs a transition under the lock. A finished game is recorded and
// subscribers are notified before the lock is released, so they observe
// changes in order and the leaderboard already holds the entry by the time
// the end screen is published. Other effects run after the unlock.
func (c *Controller) apply(transition func(State) (State, Effect)) bool {
	c.mu.Lock()
	prev := c.state
	next, effect := transition(prev)
	changed := next != prev
	if changed {
		next.Version = prev.Version + 1
	}
	c.state = next

	if effect.Kind == EffectRecord {
		c.record(effect)
	}
	if changed {
		snap := View(next)
		for ch := range c.subs {
			publish(ch, snap)
		}
	}
	c.mu.Unlock()

	c.run(effect)
	return changed
}

// publish delivers snap without blocking. When the buffer is full the oldest
// pending snapshot is dropped so the latest one always gets through.
func publish(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

func (c *Controller) run(effect Effect) {
	switch effect.Kind {
	case EffectFetch:
		c.cfg.Go(func() { c.fetch(effect.Level, effect.Generation) })
	case EffectReveal:
		c.cfg.After(c.cfg.RevealDelay, func() {
			c.apply(func(s State) (State, Effect) { return Reveal(s, effect.Generation) })
		})
	case EffectResolve:
		c.cfg.After(c.cfg.ResolveDelay, func() {
			c.apply(func(s State) (State, Effect) { return Resolve(s, effect.Generation) })
		})
	}
}

func (c *Controller) record(effect Effect) {
	if c.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if _, err := c.recorder.Record(ctx, effect.Name, effect.Score, effect.Level); err != nil {
		log.Printf("leaderboard: record %q score=%d level=%d: %v", effect.Name, effect.Score, effect.Level, err)
	}
}

func (c *Controller) fetch(level int, generation uint64) {
	q, err := c.generate(level)
	if err != nil {
		log.Printf("question fetch level=%d failed: %v", level, err)
		msg := fetchErrorMessage(err)
		c.apply(func(s State) (State, Effect) { return FetchFailed(s, generation, msg), Effect{} })
		return
	}
	c.apply(func(s State) (State, Effect) { return FetchSucceeded(s, generation, q), Effect{} })
}

func (c *Controller) generate(level int) (q models.Question, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("question generator panic: %v", r)
		}
	}()
	if c.fetcher == nil {
		return models.Question{}, errors.New("no question generator configured")
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.FetchTimeout)
	defer cancel()
	return c.fetcher.Generate(ctx, level)
}

// fetchErrorMessage picks the text shown to the player for a failed fetch.
func fetchErrorMessage(err error) string {
	var user interface{ UserMessage() string }
	if errors.As(err, &user) {
		if msg := user.UserMessage(); msg != "" {
			return msg
		}
	}
	return FallbackFetchError
}
