// Package postgres provides a Postgres-backed storage backend. All entries
// live in a single kv table keyed by the encoded key path, so ordered prefix
// scans become range queries over the primary key index.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/habitboard/core/internal/infrastructure/config"
	"github.com/habitboard/core/internal/infrastructure/storage"
)

// Store is a Postgres-backed ordered key-value store.
type Store struct {
	db     *sqlx.DB
	config config.StoreConfig
}

// Open creates a new Postgres-backed store.
func Open(cfg config.StoreConfig) (*Store, error) {
	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, config: cfg}, nil
}

// Get fetches the value stored at key.
func (s *Store) Get(ctx context.Context, key storage.Key) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = $1`, key.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get key: %w", err)
	}

	return value, nil
}

// Put stores value at key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key storage.Key, value []byte) error {
	query := `
		INSERT INTO kv (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := s.db.ExecContext(ctx, query, key.String(), value); err != nil {
		return fmt.Errorf("put key: %w", err)
	}

	return nil
}

// Delete removes the entry at key.
func (s *Store) Delete(ctx context.Context, key storage.Key) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = $1`, key.String()); err != nil {
		return fmt.Errorf("delete key: %w", err)
	}

	return nil
}

// Scan visits every entry whose key starts with prefix, in key order.
func (s *Store) Scan(ctx context.Context, prefix storage.Key, fn storage.ScanFunc) error {
	query := `SELECT key, value FROM kv ORDER BY key`
	args := []interface{}{}

	if p := prefix.Prefix(); p != "" {
		// The prefix always ends in the '/' separator, so the half-open
		// range upper bound is the prefix with that byte bumped to '0'.
		upper := p[:len(p)-1] + "0"
		query = `SELECT key, value FROM kv WHERE key >= $1 AND key < $2 ORDER BY key`
		args = append(args, p, upper)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("scan keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		if err := fn(storage.ParseKey(key), value); err != nil {
			if errors.Is(err, storage.ErrStopScan) {
				return nil
			}
			return err
		}
	}

	return rows.Err()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Stats returns connection pool statistics.
func (s *Store) Stats() map[string]interface{} {
	stats := s.db.Stats()

	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
	}
}
