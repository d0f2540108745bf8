// database/db.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"show-do-ingles/config"
)

// Dialect selects the SQL flavour spoken by a connection.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Connect opens the PostgreSQL database described by cfg.
func Connect(cfg config.Postgres) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	log.Println("Connected to PostgreSQL")
	return db, nil
}

// OpenSQLite opens (creating if needed) the SQLite file at path.
func OpenSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite serialises writers; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	log.Printf("Opened SQLite database %s", path)
	return db, nil
}

// InitDB creates the key-value table.
func InitDB(db *sql.DB, dialect Dialect) error {
	var ddl string
	switch dialect {
	case Postgres:
		ddl = `
        CREATE TABLE IF NOT EXISTS kv_store (
            store_key VARCHAR(200) PRIMARY KEY,
            store_value TEXT NOT NULL,
            updated_at TIMESTAMP DEFAULT NOW()
        )
    `
	case SQLite:
		ddl = `
        CREATE TABLE IF NOT EXISTS kv_store (
            store_key TEXT PRIMARY KEY,
            store_value TEXT NOT NULL,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `
	default:
		return fmt.Errorf("unknown dialect %q", dialect)
	}

	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}
