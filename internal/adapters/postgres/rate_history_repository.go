package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxdisplay/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RateHistoryRepository struct {
	pool *pgxpool.Pool
}

// SaveBatch upserts rates by (from, to, date); a later fetch for the same
// date replaces the earlier value.
func (r *RateHistoryRepository) SaveBatch(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	const q = `
		insert into fx_rate_history (from_code, to_code, value, rate_date, fetched_at)
		values ($1, $2, $3::numeric, $4, coalesce($5, now()))
		on conflict (from_code, to_code, rate_date)
		do update set value = excluded.value, fetched_at = excluded.fetched_at;
	`

	batch := &pgx.Batch{}
	for _, rate := range rates {
		var fetchedAt *time.Time
		if !rate.UpdatedAt.IsZero() {
			t := rate.UpdatedAt
			fetchedAt = &t
		}
		batch.Queue(q, string(rate.From), string(rate.To), rate.Value.String(), rate.Date, fetchedAt)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save %d rates: %w", len(rates), err)
	}
	return nil
}

func (r *RateHistoryRepository) GetOnOrBefore(ctx context.Context, pair domain.RatePair, asOf time.Time) (domain.ExchangeRate, error) {
	const q = `
		select from_code, to_code, value::text, rate_date, fetched_at
		from fx_rate_history
		where from_code = $1 and to_code = $2 and rate_date <= $3
		order by rate_date desc
		limit 1;
	`

	rate, err := scanRate(r.pool.QueryRow(ctx, q, string(pair.From), string(pair.To), asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExchangeRate{}, fmt.Errorf("%w: no history for %s/%s on or before %s", domain.ErrNoFxRate,
				pair.From, pair.To, asOf.Format(domain.DateLayout))
		}
		return domain.ExchangeRate{}, fmt.Errorf("failed to select rate for pair %q/%q: %w", pair.From, pair.To, err)
	}
	return rate, nil
}

// LatestAll returns the most recent rate of every stored pair.
func (r *RateHistoryRepository) LatestAll(ctx context.Context) ([]domain.ExchangeRate, error) {
	const q = `
		select distinct on (from_code, to_code) from_code, to_code, value::text, rate_date, fetched_at
		from fx_rate_history
		order by from_code, to_code, rate_date desc, fetched_at desc;
	`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to select latest rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		rate, scanErr := scanRate(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan latest rate: %w", scanErr)
		}
		rates = append(rates, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate latest rates: %w", err)
	}
	return rates, nil
}

func scanRate(row pgx.Row) (domain.ExchangeRate, error) {
	var (
		from, to, value string
		rate            domain.ExchangeRate
	)
	if err := row.Scan(&from, &to, &value, &rate.Date, &rate.UpdatedAt); err != nil {
		return domain.ExchangeRate{}, err
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("invalid stored rate %q: %w", value, err)
	}
	rate.From = domain.CurrencyCode(from)
	rate.To = domain.CurrencyCode(to)
	rate.Value = v
	rate.Date = rate.Date.UTC()
	rate.UpdatedAt = rate.UpdatedAt.UTC()
	rate.Source = domain.SourceHistorical
	return rate, nil
}

func NewRateHistoryRepository(pool *pgxpool.Pool) *RateHistoryRepository {
	return &RateHistoryRepository{pool: pool}
}
