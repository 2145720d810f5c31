package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fxdisplay/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PreferenceRepository is a JSON key-value store for dashboard settings that
// outlive a session.
type PreferenceRepository struct {
	pool *pgxpool.Pool
}

func (r *PreferenceRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	const q = `select value::text from dashboard_preferences where key = $1;`

	var value string
	if err := r.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", domain.ErrPreferenceNotFound, key)
		}
		return nil, fmt.Errorf("failed to select preference %q: %w", key, err)
	}
	return json.RawMessage(value), nil
}

func (r *PreferenceRepository) Set(ctx context.Context, key string, value json.RawMessage) error {
	const q = `
		insert into dashboard_preferences (key, value, updated_at)
		values ($1, $2::jsonb, now())
		on conflict (key) do update set value = excluded.value, updated_at = excluded.updated_at;
	`

	if _, err := r.pool.Exec(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("failed to save preference %q: %w", key, err)
	}
	return nil
}

func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}
