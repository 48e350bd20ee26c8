package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore keeps blobs in the local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// DB exposes the handle for tests and maintenance commands.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE key = ?`, key)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("blob get %s: %w", key, err)
	}
	return data, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, data []byte) error {
	return s.PutMany(ctx, map[string][]byte{key: data})
}

func (s *SQLiteStore) PutMany(ctx context.Context, entries map[string][]byte) error {
	now := time.Now().UTC()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for key, data := range entries {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO blobs (key, data, updated_at, version) VALUES (?, ?, ?, 1)
				ON CONFLICT(key) DO UPDATE SET
					data = excluded.data,
					updated_at = excluded.updated_at,
					version = blobs.version + 1
			`, key, data, now)
			if err != nil {
				return fmt.Errorf("blob put %s: %w", key, err)
			}
		}
		return nil
	})
}

// Version returns how many times key has been written (0 when absent).
func (s *SQLiteStore) Version(ctx context.Context, key string) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT version FROM blobs WHERE key = ?`, key)
	var v int
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("blob version %s: %w", key, err)
	}
	return v, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// inTx runs fn inside a transaction, rolling back unless fn and the commit succeed.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
