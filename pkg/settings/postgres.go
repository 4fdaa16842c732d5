package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/notifykit/pkg/pg"
)

const (
	selectSettingQuery = `SELECT value FROM settings WHERE key = $1`
	upsertSettingQuery = `INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// PostgresStore reads settings from the settings table created by the
// embedded pg migrations.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	var value string
	err := s.pool.QueryRow(ctx, selectSettingQuery, key).Scan(&value)
	if pg.IsNotFoundError(err) {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", errors.Join(ErrLoadFailed, err)
	}
	if value == "" {
		return "", ErrSettingNotFound
	}
	return value, nil
}

// Save upserts key.
func (s *PostgresStore) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.pool.Exec(ctx, upsertSettingQuery, key, value)
	return err
}
