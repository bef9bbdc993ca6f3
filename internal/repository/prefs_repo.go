package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PrefsSQLite stores preferences as key-value rows. Known keys are
// "theme" and "language"; the schema does not restrict them.
type PrefsSQLite struct {
	db *sql.DB
}

func NewPrefsSQLite(db *sql.DB) *PrefsSQLite {
	return &PrefsSQLite{db: db}
}

var _ PrefsRepo = (*PrefsSQLite)(nil)

const (
	upsertPrefSQL = `
		INSERT INTO preferences (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value
	`

	selectPrefSQL = `SELECT value FROM preferences WHERE key=?`
)

// Get returns the stored value for key, or "" when the key has never
// been written.
func (r *PrefsSQLite) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, selectPrefSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("select preference %q: %w", key, err)
	}
	return value, nil
}

// Set writes the value for key, inserting or overwriting.
func (r *PrefsSQLite) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertPrefSQL, key, value); err != nil {
		return fmt.Errorf("upsert preference %q: %w", key, err)
	}
	return nil
}
