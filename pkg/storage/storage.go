package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Storage is a small sqlite-backed key-value store. Values are namespaced by a
// scope, one per user of the dex.
type Storage struct {
	db *sqlx.DB
}

type entry struct {
	Scope string `db:"scope"`
	Key   string `db:"key"`
	Value string `db:"value"`
}

func New(ctx context.Context, path string) (*Storage, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to read from database: %w", err)
	}

	s := &Storage{db: db}
	err = s.createSchema(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error while creating schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) createSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		/* sql */ `
		CREATE TABLE IF NOT EXISTS kv (
			scope TEXT NOT NULL,
			key   TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (scope, key)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}

	return nil
}

// Get reports whether a value exists for the key, and returns it if so.
func (s *Storage) Get(ctx context.Context, scope string, key string) (string, bool, error) {
	var e entry
	err := s.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT scope, key, value
		FROM kv
		WHERE scope = ? AND key = ?
	`, scope, key).StructScan(&e)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("error while reading key %q for scope %q: %w", key, scope, err)
	}

	return e.Value, true, nil
}

func (s *Storage) Set(ctx context.Context, scope string, key string, value string) error {
	_, err := s.db.NamedExecContext(ctx,
		/* sql */ `
		INSERT INTO kv (scope, key, value)
		VALUES (:scope, :key, :value)
		ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value
	`, entry{Scope: scope, Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("error while writing key %q for scope %q: %w", key, scope, err)
	}

	return nil
}

func (s *Storage) Delete(ctx context.Context, scope string, key string) error {
	_, err := s.db.ExecContext(ctx,
		/* sql */ `
		DELETE FROM kv
		WHERE scope = ? AND key = ?
	`, scope, key)
	if err != nil {
		return fmt.Errorf("error while deleting key %q for scope %q: %w", key, scope, err)
	}

	return nil
}

// Scopes lists every scope that has a value stored under key.
func (s *Storage) Scopes(ctx context.Context, key string) ([]string, error) {
	var scopes []string
	err := s.db.SelectContext(ctx, &scopes,
		/* sql */ `
		SELECT scope
		FROM kv
		WHERE key = ?
		ORDER BY scope ASC
	`, key)
	if err != nil {
		return nil, fmt.Errorf("error while listing scopes for key %q: %w", key, err)
	}

	return scopes, nil
}
