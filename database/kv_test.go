package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kvStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

func exerciseKV(t *testing.T, kv kvStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "english_quiz_leaderboard", `[{"name":"Maria"}]`))
	value, ok, err := kv.Get(ctx, "english_quiz_leaderboard")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"name":"Maria"}]`, value)

	require.NoError(t, kv.Set(ctx, "english_quiz_leaderboard", `[]`))
	value, ok, err = kv.Get(ctx, "english_quiz_leaderboard")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value)
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitDB(db, SQLite))
	require.NoError(t, InitDB(db, SQLite), "InitDB is idempotent")

	kv, err := NewKV(db, SQLite)
	require.NoError(t, err)
	exerciseKV(t, kv)
	assert.NoError(t, kv.Ping(context.Background()))
}

func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	ctx := context.Background()

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, InitDB(db, SQLite))
	kv, err := NewKV(db, SQLite)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "k", "v"))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	kv, err = NewKV(db, SQLite)
	require.NoError(t, err)
	value, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestUnknownDialect(t *testing.T) {
	_, err := NewKV(nil, Dialect("oracle"))
	assert.Error(t, err)
	assert.Error(t, InitDB(nil, Dialect("oracle")))
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}
