// Package store persists manual value overrides in PostgreSQL. An
// override pins an entity to an analyst-supplied number until it is
// deleted, surviving restarts.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ErrNoOverride marks a key without a stored override.
var ErrNoOverride = errors.New("no override")

// Override pins an entity value.
type Override struct {
	Key       string    `db:"key" json:"key"`
	Value     float64   `db:"value" json:"value"`
	Note      string    `db:"note" json:"note,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Overrides is the PostgreSQL-backed override repository.
type Overrides struct {
	db      *sqlx.DB
	timeout time.Duration
}

// Open connects to PostgreSQL and ensures the schema exists.
func Open(dsn string, timeout time.Duration) (*Overrides, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	o := &Overrides{db: db, timeout: timeout}
	if err := o.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return o, nil
}

// NewOverrides wraps an existing connection, for tests.
func NewOverrides(db *sqlx.DB, timeout time.Duration) *Overrides {
	return &Overrides{db: db, timeout: timeout}
}

func (o *Overrides) ensureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	_, err := o.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS value_overrides (
			key        TEXT PRIMARY KEY,
			value      DOUBLE PRECISION NOT NULL,
			note       TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure override schema: %w", err)
	}
	return nil
}

// Get returns the override for key, or ErrNoOverride.
func (o *Overrides) Get(ctx context.Context, key string) (Override, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var ov Override
	err := o.db.GetContext(ctx, &ov,
		`SELECT key, value, note, updated_at FROM value_overrides WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return Override{}, fmt.Errorf("%w: %s", ErrNoOverride, key)
	}
	if err != nil {
		return Override{}, fmt.Errorf("get override: %w", err)
	}
	return ov, nil
}

// Set creates or replaces the override for key.
func (o *Overrides) Set(ctx context.Context, key string, value float64, note string) (Override, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var ov Override
	err := o.db.QueryRowxContext(ctx, `
		INSERT INTO value_overrides (key, value, note, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, note = EXCLUDED.note, updated_at = now()
		RETURNING key, value, note, updated_at`,
		key, value, note).StructScan(&ov)
	if err != nil {
		return Override{}, fmt.Errorf("set override: %w", err)
	}
	return ov, nil
}

// Delete removes the override for key. Deleting an absent key returns
// ErrNoOverride.
func (o *Overrides) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	res, err := o.db.ExecContext(ctx,
		`DELETE FROM value_overrides WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNoOverride, key)
	}
	return nil
}

// All lists every stored override, newest first.
func (o *Overrides) All(ctx context.Context) ([]Override, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var out []Override
	err := o.db.SelectContext(ctx, &out,
		`SELECT key, value, note, updated_at FROM value_overrides ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	return out, nil
}

// Close releases the underlying connection pool.
func (o *Overrides) Close() error {
	return o.db.Close()
}
