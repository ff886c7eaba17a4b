// Package storage is the embedded SQL store: schema, FTS5 trigger sync,
// bounded connection pool, and the full Store contract the orchestrator
// depends on.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/sysid/bkmr/internal/domain"
)

// maxPoolConns bounds the connection pool; sqlite permits one writer at a
// time regardless, but read concurrency benefits from more than one
// connection.
const maxPoolConns = 15

// Store is the embedded relational store for bookmarks.
type Store struct {
	db *sql.DB
}

// New opens (creating if absent) the database at dbURL and applies any
// pending migrations.
func New(dbURL string) (*Store, error) {
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", domain.ErrStoreFailure, err)
	}
	db.SetMaxOpenConns(maxPoolConns)
	db.SetMaxIdleConns(maxPoolConns)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: set WAL mode: %v", domain.ErrStoreFailure, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enable foreign keys: %v", domain.ErrStoreFailure, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

// migrate verifies the migration-tracking table exists, seeding it if
// absent, then applies every migration whose version hasn't been recorded
// yet - so an older database upgrades silently and a fresh one seeds in
// one pass.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(createMigrationsTableSQL); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", domain.ErrStoreFailure, err)
	}
	applied := map[int]bool{}
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("%w: read schema_migrations: %v", domain.ErrStoreFailure, err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return fmt.Errorf("%w: scan schema_migrations: %v", domain.ErrStoreFailure, err)
		}
		applied[v] = true
	}
	rows.Close()

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("%w: begin migration %d: %v", domain.ErrStoreFailure, m.version, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: apply migration %d: %v", domain.ErrStoreFailure, m.version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations(version, applied_at) VALUES (?, ?)", m.version, time.Now().UTC().Format(time.RFC3339)); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: record migration %d: %v", domain.ErrStoreFailure, m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("%w: commit migration %d: %v", domain.ErrStoreFailure, m.version, err)
		}
	}
	return nil
}

// retryWithBackoff retries fn a few times with jittered backoff, matching
// the teacher's approach to transient "database is locked" errors under
// the single-writer model.
func retryWithBackoff(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		backoff := time.Duration(1<<uint(i))*10*time.Millisecond + time.Duration(rand.Intn(10))*time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}
