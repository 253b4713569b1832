package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTimeout bounds each sqlite operation.
const DefaultTimeout = 5 * time.Second

// SQLite is a Store backed by a single sqlite table.
type SQLite struct {
	db      *sql.DB
	timeout time.Duration
}

// OpenSQLite opens (creating if needed) the sqlite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	// Immediate transactions take the write lock at BEGIN, so a second
	// process running Incr waits on the busy timeout instead of failing
	// with "database is locked" when it tries to upgrade a read lock.
	db, err := sql.Open("sqlite3", "file:"+path+"?_txlock=immediate&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	// One connection per handle serialises writers within this process.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, timeout: DefaultTimeout}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// GetString implements Store.
func (s *SQLite) GetString(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapKeyErr("get", key, err)
	}
	return value, true, nil
}

// GetNumber implements Store.
func (s *SQLite) GetNumber(ctx context.Context, key string) (int64, bool, error) {
	value, found, err := s.GetString(ctx, key)
	if err != nil || !found {
		return 0, found, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, true, wrapKeyErr("get number", key, ErrNotNumber)
	}
	return n, true, nil
}

// SetString implements Store.
func (s *SQLite) SetString(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return wrapKeyErr("set", key, err)
}

// SetNumber implements Store.
func (s *SQLite) SetNumber(ctx context.Context, key string, n int64) error {
	return s.SetString(ctx, key, strconv.FormatInt(n, 10))
}

// Delete implements Store.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	return wrapKeyErr("delete", key, err)
}

// Incr implements Store. The read and the write share one transaction.
func (s *SQLite) Incr(ctx context.Context, key string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrapKeyErr("incr", key, err)
	}

	var current string
	var n int64
	err = tx.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return 0, wrapKeyErr("incr", key, rollback(tx, err))
	default:
		n, err = strconv.ParseInt(current, 10, 64)
		if err != nil {
			return 0, wrapKeyErr("incr", key, rollback(tx, ErrNotNumber))
		}
	}
	n++

	_, err = tx.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, strconv.FormatInt(n, 10))
	if err != nil {
		return 0, wrapKeyErr("incr", key, rollback(tx, err))
	}
	if err := tx.Commit(); err != nil {
		return 0, wrapKeyErr("incr", key, err)
	}
	return n, nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func rollback(tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return fmt.Errorf("%w (rollback: %v)", err, rbErr)
	}
	return err
}
