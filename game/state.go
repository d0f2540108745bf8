// game/state.go
package game

import (
	"strings"

	"show-do-ingles/models"
)

const (
	// InitialSkips is the skip budget a new game starts with.
	InitialSkips = 3

	noSelection = -1
)

// AnswerStage tracks an answer through select, reveal and resolve.
type AnswerStage int

const (
	AnswerNone AnswerStage = iota
	AnswerSelected
	AnswerRevealed
	AnswerResolved
)

// State is one game session. Transition functions take a State by value and
// return the next one together with the side effect the caller must run.
type State struct {
	PlayerName         string
	CurrentQuestion    *models.Question
	Score              int
	Level              int
	SkipsLeft          int
	HintUsedForCurrent bool
	Status             models.GameStatus
	IsLoading          bool
	LastError          string

	Selected   int
	Stage      AnswerStage
	Explaining bool

	// Generation changes whenever the current question is replaced or the game
	// is abandoned. Fetch results and answer timers carry the generation they
	// were issued for and are dropped when it no longer matches.
	Generation uint64

	// Version counts applied changes. The controller bumps it; transitions
	// leave it alone.
	Version uint64
}

// EffectKind names the side effect a transition asks for.
type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectFetch asks for a question for Effect.Level.
	EffectFetch
	// EffectReveal schedules Reveal after the reveal delay.
	EffectReveal
	// EffectResolve schedules Resolve after the resolve delay.
	EffectResolve
	// EffectRecord hands the finished game to the leaderboard.
	EffectRecord
)

// Effect is the side effect requested by a transition.
type Effect struct {
	Kind       EffectKind
	Level      int
	Generation uint64

	// Set for EffectRecord.
	Name  string
	Score int
}

// NewState returns an idle session on the start screen.
func NewState(playerName string) State {
	return State{
		PlayerName: playerName,
		Level:      1,
		SkipsLeft:  InitialSkips,
		Status:     models.StatusStart,
		Selected:   noSelection,
	}
}

// Revealed reports whether the correctness of the selected answer is visible.
func (s State) Revealed() bool {
	return s.Stage >= AnswerRevealed
}

// FinalPrize is the prize announced on the end screens.
func (s State) FinalPrize() int {
	switch s.Status {
	case models.StatusWin:
		return FinalPrizeOnWin()
	case models.StatusGameOver:
		return FinalPrizeOnLoss(s.Level)
	default:
		return 0
	}
}

// StartGame begins a new game for name. An empty name falls back to the name
// already on the session; a blank result leaves the state untouched.
func StartGame(s State, name string) (State, Effect) {
	if s.IsLoading || s.Status == models.StatusPlaying {
		return s, Effect{}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(s.PlayerName)
	}
	if name == "" {
		return s, Effect{}
	}

	next := NewState(name)
	next.Status = models.StatusPlaying
	next.Generation = s.Generation
	return beginFetch(next)
}

// FetchSucceeded installs q if the fetch for generation is still the one awaited.
func FetchSucceeded(s State, generation uint64, q models.Question) State {
	if !awaiting(s, generation) {
		return s
	}
	s.CurrentQuestion = &q
	s.IsLoading = false
	s.LastError = ""
	s.HintUsedForCurrent = false
	return clearAnswer(s)
}

// FetchFailed records message if the fetch for generation is still the one awaited.
// Level, score and skips are kept so the same fetch can be retried.
func FetchFailed(s State, generation uint64, message string) State {
	if !awaiting(s, generation) {
		return s
	}
	s.IsLoading = false
	s.LastError = message
	return s
}

// Retry re-issues the failed fetch for the current level.
func Retry(s State) (State, Effect) {
	if s.Status != models.StatusPlaying || s.IsLoading || s.CurrentQuestion != nil || s.LastError == "" {
		return s, Effect{}
	}
	return beginFetch(s)
}

// SelectAnswer records idx as the player's choice and schedules the reveal.
func SelectAnswer(s State, idx int) (State, Effect) {
	if !canAct(s) || s.Stage != AnswerNone {
		return s, Effect{}
	}
	if idx < 0 || idx >= len(s.CurrentQuestion.Options) {
		return s, Effect{}
	}
	s.Selected = idx
	s.Stage = AnswerSelected
	return s, Effect{Kind: EffectReveal, Generation: s.Generation}
}

// Reveal makes the correctness of the selected answer visible.
func Reveal(s State, generation uint64) (State, Effect) {
	if s.Generation != generation || s.Status != models.StatusPlaying || s.Stage != AnswerSelected {
		return s, Effect{}
	}
	s.Stage = AnswerRevealed
	return s, Effect{Kind: EffectResolve, Generation: s.Generation}
}

// Resolve scores the revealed answer. A correct answer adds the level prize and
// waits for NextLevel; a wrong one ends the game.
func Resolve(s State, generation uint64) (State, Effect) {
	if s.Generation != generation || s.Status != models.StatusPlaying || s.Stage != AnswerRevealed {
		return s, Effect{}
	}
	s.Stage = AnswerResolved
	if s.CurrentQuestion != nil && s.Selected == s.CurrentQuestion.CorrectIndex {
		s.Score += PrizeForCorrectAnswer(s.Level)
		s.Explaining = true
		return s, Effect{}
	}
	return finish(s, models.StatusGameOver)
}

// NextLevel leaves the explanation. On the last level the game is won, otherwise
// the level goes up and the next question is fetched.
func NextLevel(s State) (State, Effect) {
	if s.Status != models.StatusPlaying || !s.Explaining {
		return s, Effect{}
	}
	s.Explaining = false
	if s.Level >= MaxLevel {
		return finish(s, models.StatusWin)
	}
	s.Level++
	s = clearAnswer(s)
	return beginFetch(s)
}

// Skip spends one skip and fetches a new question for the same level.
func Skip(s State) (State, Effect) {
	if !canAct(s) || s.Stage != AnswerNone || s.SkipsLeft <= 0 {
		return s, Effect{}
	}
	s.SkipsLeft--
	return beginFetch(s)
}

// Hint marks the hint as used for the current question. Further calls are no-ops.
func Hint(s State) State {
	if !canAct(s) || s.HintUsedForCurrent || s.Revealed() {
		return s
	}
	s.HintUsedForCurrent = true
	return s
}

// Stop ends the game on the player's request, keeping score and level.
func Stop(s State) (State, Effect) {
	if s.Status != models.StatusPlaying || s.IsLoading || s.Explaining || s.Stage != AnswerNone {
		return s, Effect{}
	}
	return finish(s, models.StatusGameOver)
}

// ShowLeaderboard moves to the leaderboard screen from the start or end screens.
func ShowLeaderboard(s State) State {
	if s.IsLoading || !(s.Status == models.StatusStart || s.Status.Ended()) {
		return s
	}
	s.Status = models.StatusLeaderboard
	return s
}

// Home returns to the start screen, keeping only the player name. A game in
// progress is abandoned without being recorded.
func Home(s State) State {
	next := NewState(s.PlayerName)
	next.Generation = s.Generation + 1
	return next
}

func beginFetch(s State) (State, Effect) {
	s.Generation++
	s.IsLoading = true
	s.LastError = ""
	s.CurrentQuestion = nil
	s.HintUsedForCurrent = false
	s = clearAnswer(s)
	return s, Effect{Kind: EffectFetch, Level: s.Level, Generation: s.Generation}
}

func finish(s State, status models.GameStatus) (State, Effect) {
	s.Status = status
	s.Explaining = false
	s.CurrentQuestion = nil
	return s, Effect{
		Kind:       EffectRecord,
		Level:      s.Level,
		Generation: s.Generation,
		Name:       s.PlayerName,
		Score:      s.Score,
	}
}

func clearAnswer(s State) State {
	s.Selected = noSelection
	s.Stage = AnswerNone
	s.Explaining = false
	return s
}

func awaiting(s State, generation uint64) bool {
	return s.IsLoading && s.Status == models.StatusPlaying && s.Generation == generation
}

// canAct reports whether a question is on screen and the player may act on it.
func canAct(s State) bool {
	return s.Status == models.StatusPlaying && !s.IsLoading && s.CurrentQuestion != nil && !s.Explaining
}
