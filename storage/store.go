// Package storage persists the tracker's collections in an embedded SQLite
// database. One Store owns the long-lived connection pool; the per-entity
// repositories share it. Schema changes ship as versioned migrations that
// run on open.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/coderhema/Spenders/internal/log"
)

var (
	// ErrNotFound is returned by point reads that matched no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned by inserts that violated a primary key or
	// unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Store wraps the SQLite handle shared by all repositories.
type Store struct {
	db  *sql.DB
	log *log.Logger
}

// Open prepares the database file, runs pending migrations and returns a
// ready Store. The parent directory is created when missing so a first run
// on a fresh machine works without setup.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	storeLog := logger.WithComponent(log.ComponentStorage)
	storeLog.Info("database ready", log.FieldPath, dbPath)

	return &Store{db: db, log: storeLog}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// dsn appends the pragmas every connection needs: WAL keeps readers and the
// single writer from blocking each other, busy_timeout covers migration and
// checkpoint contention.
func dsn(dbPath string) string {
	return dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// withTx runs fn in a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite primary key or unique
// index violation.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
