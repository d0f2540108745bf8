// database/kv.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KV is a string key-value store backed by the kv_store table.
type KV struct {
	db         *sql.DB
	selectStmt string
	upsertStmt string
}

// NewKV returns a KV on db. InitDB must have run for the same dialect.
func NewKV(db *sql.DB, dialect Dialect) (*KV, error) {
	switch dialect {
	case Postgres:
		return &KV{
			db:         db,
			selectStmt: `SELECT store_value FROM kv_store WHERE store_key = $1`,
			upsertStmt: `
                INSERT INTO kv_store (store_key, store_value, updated_at)
                VALUES ($1, $2, NOW())
                ON CONFLICT (store_key) DO UPDATE
                SET store_value = EXCLUDED.store_value, updated_at = NOW()
            `,
		}, nil
	case SQLite:
		return &KV{
			db:         db,
			selectStmt: `SELECT store_value FROM kv_store WHERE store_key = ?`,
			upsertStmt: `
                INSERT INTO kv_store (store_key, store_value, updated_at)
                VALUES (?, ?, CURRENT_TIMESTAMP)
                ON CONFLICT (store_key) DO UPDATE
                SET store_value = excluded.store_value, updated_at = CURRENT_TIMESTAMP
            `,
		}, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (kv *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRowContext(ctx, kv.selectStmt, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (kv *KV) Set(ctx context.Context, key, value string) error {
	if _, err := kv.db.ExecContext(ctx, kv.upsertStmt, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Ping checks the underlying connection.
func (kv *KV) Ping(ctx context.Context) error {
	return kv.db.PingContext(ctx)
}
