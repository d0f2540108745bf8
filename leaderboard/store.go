// leaderboard/store.go
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"show-do-ingles/models"
)

const (
	// StorageKey is where the serialized leaderboard lives in the KV store.
	StorageKey = "english_quiz_leaderboard"

	// MaxEntries caps the leaderboard.
	MaxEntries = 10

	// AnonymousName replaces an empty player name.
	AnonymousName = "Anônimo"

	// DateLayout is the pt-BR day/month/year layout used for entry dates.
	DateLayout = "02/01/2006"
)

// KV is the persistence surface the leaderboard is stored on.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store keeps the top results in memory and writes the whole list back to the
// KV after every recorded game.
type Store struct {
	mu      sync.Mutex
	kv      KV
	entries []models.LeaderboardEntry
	now     func() time.Time
}

// New returns an empty store over kv. Call Load to read what was persisted.
func New(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Load replaces the in-memory list with the persisted one. Missing or
// unreadable data yields an empty leaderboard.
func (s *Store) Load(ctx context.Context) []models.LeaderboardEntry {
	entries, err := s.read(ctx)
	if err != nil {
		log.Printf("leaderboard: load failed, starting empty: %v", err)
		entries = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	return clone(s.entries)
}

// Entries returns the current ranking, best score first.
func (s *Store) Entries() []models.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.entries)
}

// Record adds a finished game and persists the resulting top list. The
// in-memory list is updated even when the write fails; the write error is
// returned for the caller to log.
func (s *Store) Record(ctx context.Context, name string, score, level int) (models.LeaderboardEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = AnonymousName
	}
	entry := models.LeaderboardEntry{
		Name:  name,
		Score: score,
		Level: level,
		Date:  s.now().Format(DateLayout),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = Merge(s.entries, entry, MaxEntries)

	data, err := json.Marshal(s.entries)
	if err != nil {
		return entry, fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return entry, fmt.Errorf("write leaderboard: %w", err)
	}
	return entry, nil
}

// Merge appends entry, sorts by score descending keeping insertion order on
// ties, and truncates to limit. The input slice is not modified.
func Merge(entries []models.LeaderboardEntry, entry models.LeaderboardEntry, limit int) []models.LeaderboardEntry {
	merged := make([]models.LeaderboardEntry, 0, len(entries)+1)
	merged = append(merged, entries...)
	merged = append(merged, entry)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func (s *Store) read(ctx context.Context) ([]models.LeaderboardEntry, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var entries []models.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries, nil
}

func clone(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(entries))
	copy(out, entries)
	return out
}
