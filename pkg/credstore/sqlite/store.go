// Package sqlite implements credstore.Store on an SQLite database, for hosts
// that already keep their state there.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/eventcart/pkg/credstore"

	_ "modernc.org/sqlite"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

type Store struct {
	db *sql.DB
}

var _ credstore.Store = (*Store)(nil)

// NewStore opens dsn and applies pending migrations.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer keeps Set atomic without relying on busy timeouts.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite store: migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Get(ctx context.Context) (credstore.Credentials, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM credentials`)
	if err != nil {
		return credstore.Credentials{}, fmt.Errorf("sqlite store: get: %w", err)
	}
	defer rows.Close()

	var token, user string
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return credstore.Credentials{}, fmt.Errorf("sqlite store: scan: %w", err)
		}
		switch k {
		case keyToken:
			token = v
		case keyUser:
			user = v
		}
	}
	if err := rows.Err(); err != nil {
		return credstore.Credentials{}, fmt.Errorf("sqlite store: get: %w", err)
	}
	_ = rows.Close()

	if user != "" && !credstore.ValidUser([]byte(user)) {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, keyUser); err != nil {
			return credstore.Credentials{}, fmt.Errorf("sqlite store: clear bad user: %w", err)
		}
		return credstore.Credentials{}, credstore.ErrNotFound
	}
	if token == "" || user == "" {
		return credstore.Credentials{}, credstore.ErrNotFound
	}

	return credstore.Credentials{Token: token, User: json.RawMessage(user)}, nil
}

func (s *Store) Set(ctx context.Context, user json.RawMessage, token string) error {
	if err := credstore.CheckSet(user, token); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		const upsert = `INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
		if _, err := tx.ExecContext(ctx, upsert, keyToken, token); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, upsert, keyUser, string(user))
		return err
	})
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("sqlite store: clear: %w", err)
	}
	return nil
}

// withTx executes fn within a transaction, committing on success.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite store: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return fmt.Errorf("sqlite store: %w", err)
	}
	if err := tx.Commit(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("sqlite store: commit: %w", err)
	}
	return nil
}
