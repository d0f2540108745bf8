package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"show-do-ingles/models"
)

type fakeFetcher struct {
	mu       sync.Mutex
	question models.Question
	err      error
	levels   []int
}

func (f *fakeFetcher) Generate(_ context.Context, level int) (models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels = append(f.levels, level)
	return f.question, f.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []models.LeaderboardEntry
	err     error
}

func (r *fakeRecorder) Record(_ context.Context, name string, score, level int) (models.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := models.LeaderboardEntry{Name: name, Score: score, Level: level, Date: "18/10/2026"}
	r.entries = append(r.entries, e)
	return e, r.err
}

type userErr struct{ msg string }

func (e userErr) Error() string       { return "generator: " + e.msg }
func (e userErr) UserMessage() string { return e.msg }

// inline runs every effect synchronously so tests observe final states.
func inline() Config {
	return Config{
		After: func(_ time.Duration, f func()) { f() },
		Go:    func(f func()) { f() },
	}
}

func TestController_CorrectAnswerScenario(t *testing.T) {
	fetcher := &fakeFetcher{question: sampleQuestion(2)}
	rec := &fakeRecorder{}
	c := NewController(fetcher, rec, inline())

	require.True(t, c.StartGame("Maria"))
	require.True(t, c.Answer(2))

	s := c.State()
	assert.Equal(t, models.StatusPlaying, s.Status)
	assert.True(t, s.Explaining)
	assert.Equal(t, 1000, s.Score)
	assert.Empty(t, rec.entries)

	require.True(t, c.NextLevel())
	s = c.State()
	assert.Equal(t, 2, s.Level)
	assert.False(t, s.HintUsedForCurrent)
	assert.NotNil(t, s.CurrentQuestion)
	assert.Equal(t, []int{1, 2}, fetcher.levels)
}

func TestController_WrongAnswerRecords(t *testing.T) {
	fetcher := &fakeFetcher{question: sampleQuestion(0)}
	rec := &fakeRecorder{}
	c := NewController(fetcher, rec, inline())

	require.True(t, c.StartGame("Maria"))
	for level := 1; level < 5; level++ {
		require.True(t, c.Answer(0))
		require.True(t, c.NextLevel())
	}
	require.True(t, c.Skip())
	require.True(t, c.Skip())
	s := c.State()
	require.Equal(t, 5, s.Level)
	require.Equal(t, 1, s.SkipsLeft)
	score := s.Score

	require.True(t, c.Answer(1))

	s = c.State()
	assert.Equal(t, models.StatusGameOver, s.Status)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, "Maria", rec.entries[0].Name)
	assert.Equal(t, score, rec.entries[0].Score)
	assert.Equal(t, 5, rec.entries[0].Level)
}

func TestController_WinScenario(t *testing.T) {
	fetcher := &fakeFetcher{question: sampleQuestion(3)}
	rec := &fakeRecorder{}
	c := NewController(fetcher, rec, inline())

	require.True(t, c.StartGame("Maria"))
	for level := 1; level <= MaxLevel; level++ {
		require.True(t, c.Answer(3), "level %d", level)
		require.True(t, c.NextLevel(), "level %d", level)
	}

	s := c.State()
	assert.Equal(t, models.StatusWin, s.Status)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, MaxLevel, rec.entries[0].Level)
	assert.Equal(t, FinalPrizeOnWin(), c.Snapshot().FinalPrize)
}

func TestController_FetchFailureMessages(t *testing.T) {
	fetcher := &fakeFetcher{err: userErr{msg: "Tente novamente."}}
	c := NewController(fetcher, nil, inline())

	require.True(t, c.StartGame("Maria"))
	s := c.State()
	assert.False(t, s.IsLoading)
	assert.Equal(t, "Tente novamente.", s.LastError)

	fetcher.err = errors.New("dial tcp: refused")
	require.True(t, c.Retry())
	assert.Equal(t, FallbackFetchError, c.State().LastError)

	fetcher.err = nil
	fetcher.question = sampleQuestion(1)
	require.True(t, c.Retry())
	s = c.State()
	assert.Empty(t, s.LastError)
	assert.NotNil(t, s.CurrentQuestion)
	assert.Equal(t, []int{1, 1, 1}, fetcher.levels)
}

type panicFetcher struct{}

func (panicFetcher) Generate(context.Context, int) (models.Question, error) {
	panic("broken")
}

func TestController_FetchPanicResolvesLoading(t *testing.T) {
	c := NewController(panicFetcher{}, nil, inline())
	require.True(t, c.StartGame("Maria"))
	s := c.State()
	assert.False(t, s.IsLoading)
	assert.Equal(t, FallbackFetchError, s.LastError)
}

func TestController_RecordFailureIsNotFatal(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	c := NewController(&fakeFetcher{question: sampleQuestion(0)}, rec, inline())
	require.True(t, c.StartGame("Maria"))
	require.True(t, c.Stop())
	assert.Equal(t, models.StatusGameOver, c.State().Status)
	assert.Len(t, rec.entries, 1)
}

func TestController_StaleFetchAfterHome(t *testing.T) {
	var pending func()
	cfg := inline()
	cfg.Go = func(f func()) { pending = f }
	c := NewController(&fakeFetcher{question: sampleQuestion(0)}, nil, cfg)

	require.True(t, c.StartGame("Maria"))
	require.NotNil(t, pending)
	require.True(t, c.Home())

	pending()

	s := c.State()
	assert.Equal(t, models.StatusStart, s.Status)
	assert.Nil(t, s.CurrentQuestion)
	assert.False(t, s.IsLoading)
}

func TestController_RejectsSecondFetchWhileLoading(t *testing.T) {
	calls := 0
	cfg := inline()
	cfg.Go = func(func()) { calls++ }
	c := NewController(&fakeFetcher{}, nil, cfg)

	require.True(t, c.StartGame("Maria"))
	assert.False(t, c.StartGame("Maria"))
	assert.False(t, c.Skip())
	assert.False(t, c.Retry())
	assert.Equal(t, 1, calls)
}

func TestController_StagedRevealOrdering(t *testing.T) {
	var timers []func()
	cfg := inline()
	cfg.After = func(_ time.Duration, f func()) { timers = append(timers, f) }
	c := NewController(&fakeFetcher{question: sampleQuestion(1)}, nil, cfg)
	require.True(t, c.StartGame("Maria"))

	require.True(t, c.Answer(1))
	s := c.State()
	assert.Equal(t, AnswerSelected, s.Stage)
	assert.Zero(t, s.Score)
	assert.False(t, c.Answer(2))

	require.Len(t, timers, 1)
	timers[0]()
	assert.Equal(t, AnswerRevealed, c.State().Stage)
	assert.Zero(t, c.State().Score)

	require.Len(t, timers, 2)
	timers[1]()
	s = c.State()
	assert.Equal(t, AnswerResolved, s.Stage)
	assert.Equal(t, 1000, s.Score)
}

func TestController_Subscribe(t *testing.T) {
	c := NewController(&fakeFetcher{question: sampleQuestion(0)}, nil, inline())
	ch, cancel := c.Subscribe()
	defer cancel()

	require.True(t, c.StartGame("Maria"))

	first := <-ch
	assert.True(t, first.IsLoading)
	second := <-ch
	assert.False(t, second.IsLoading)
	require.NotNil(t, second.Question)

	cancel()
	c.Hint()
	select {
	case <-ch:
		t.Fatal("snapshot delivered after cancel")
	default:
	}
}

func TestController_NoopReportsUnchanged(t *testing.T) {
	c := NewController(&fakeFetcher{question: sampleQuestion(0)}, nil, inline())
	assert.False(t, c.Answer(0))
	assert.False(t, c.Hint())
	assert.False(t, c.NextLevel())
	assert.False(t, c.StartGame(""))
}

func TestController_LastSnapshotMatchesStateUnderConcurrency(t *testing.T) {
	for i := 0; i < 2000; i++ {
		c := NewController(&fakeFetcher{question: sampleQuestion(0)}, nil, inline())
		ch, cancel := c.Subscribe()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); c.StartGame("Maria") }()
		go func() { defer wg.Done(); c.Home() }()
		wg.Wait()
		cancel()

		var last Snapshot
	drain:
		for {
			select {
			case snap := <-ch:
				last = snap
			default:
				break drain
			}
		}
		require.Equal(t, c.Snapshot(), last, "run %d", i)
	}
}

func TestController_SlowSubscriberGetsLatest(t *testing.T) {
	c := NewController(&fakeFetcher{question: sampleQuestion(0)}, nil, inline())
	ch, cancel := c.Subscribe()
	defer cancel()

	for i := 0; i < 10; i++ {
		c.Home()
	}

	var last Snapshot
	for len(ch) > 0 {
		last = <-ch
	}
	assert.Equal(t, c.Snapshot().Version, last.Version)
}

func TestController_VersionCountsChanges(t *testing.T) {
	c := NewController(&fakeFetcher{question: sampleQuestion(2)}, nil, inline())
	assert.Zero(t, c.Snapshot().Version)

	require.True(t, c.StartGame("Maria"))
	v := c.Snapshot().Version
	assert.Equal(t, uint64(2), v, "loading then question")

	assert.False(t, c.NextLevel())
	assert.Equal(t, v, c.Snapshot().Version, "rejected transitions keep the version")

	require.True(t, c.Home())
	assert.Equal(t, v+1, c.Snapshot().Version)
}

type publishCheckRecorder struct {
	ch      <-chan Snapshot
	pending int
}

func (r *publishCheckRecorder) Record(_ context.Context, name string, score, level int) (models.LeaderboardEntry, error) {
	r.pending = len(r.ch)
	return models.LeaderboardEntry{Name: name, Score: score, Level: level}, nil
}

func TestController_RecordsBeforePublishingEnd(t *testing.T) {
	rec := &publishCheckRecorder{pending: -1}
	c := NewController(&fakeFetcher{question: sampleQuestion(2)}, rec, inline())
	ch, cancel := c.Subscribe()
	defer cancel()
	rec.ch = ch

	require.True(t, c.StartGame("Maria"))
	for len(ch) > 0 {
		<-ch
	}
	require.True(t, c.Stop())

	assert.Zero(t, rec.pending, "end snapshot published before the record")
	end := <-ch
	assert.Equal(t, models.StatusGameOver, end.Status)
}
