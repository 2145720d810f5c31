package postgres_test

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"fxdisplay/internal/adapters/postgres"
	"fxdisplay/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const migrationsDir = "../../platform/db/migrations"

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, resetDatabase(ctx, pool))

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.Eventually(t, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return db.PingContext(pingCtx) == nil
	}, 15*time.Second, 500*time.Millisecond)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, db, migrationsDir))

	pgContainer = pg
	pgConnStr = dsn
}

func resetDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `truncate table fx_rate_history, dashboard_preferences restart identity cascade`); err != nil {
		return err
	}
	return nil
}

func day(offset int) time.Time {
	return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func historyRate(from, to domain.CurrencyCode, value string, date time.Time) domain.ExchangeRate {
	return domain.ExchangeRate{
		From:      from,
		To:        to,
		Value:     decimal.RequireFromString(value),
		Date:      date,
		Source:    domain.SourceBackend,
		UpdatedAt: date.Add(9 * time.Hour),
	}
}

// ---------- RateHistoryRepository tests ----------

func TestRateHistoryRepository_GetOnOrBefore_NotFound(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateHistoryRepository(pool)

	_, err := repo.GetOnOrBefore(context.Background(), domain.RatePair{From: "USD", To: "EUR"}, day(0))
	require.ErrorIs(t, err, domain.ErrNoFxRate)
}

func TestRateHistoryRepository_SaveAndGetOnOrBefore(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateHistoryRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.SaveBatch(ctx, []domain.ExchangeRate{
		historyRate("USD", "EUR", "0.91", day(-5)),
		historyRate("USD", "EUR", "0.92", day(-2)),
		historyRate("USD", "EUR", "0.93", day(0)),
		historyRate("GBP", "EUR", "1.15", day(-2)),
	}))

	got, err := repo.GetOnOrBefore(ctx, domain.RatePair{From: "USD", To: "EUR"}, day(-1))
	require.NoError(t, err)
	require.Equal(t, "0.92", got.Value.String())
	require.Equal(t, day(-2), got.Date)
	require.Equal(t, domain.SourceHistorical, got.Source)
	require.True(t, got.UpdatedAt.Equal(day(-2).Add(9*time.Hour)))

	got, err = repo.GetOnOrBefore(ctx, domain.RatePair{From: "USD", To: "EUR"}, day(0))
	require.NoError(t, err)
	require.Equal(t, "0.93", got.Value.String())

	_, err = repo.GetOnOrBefore(ctx, domain.RatePair{From: "USD", To: "EUR"}, day(-6))
	require.ErrorIs(t, err, domain.ErrNoFxRate)
}

func TestRateHistoryRepository_SaveBatch_UpsertsSameDate(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateHistoryRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.SaveBatch(ctx, []domain.ExchangeRate{historyRate("USD", "EUR", "0.92", day(0))}))
	require.NoError(t, repo.SaveBatch(ctx, []domain.ExchangeRate{historyRate("USD", "EUR", "0.9234567890123456", day(0))}))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from fx_rate_history`).Scan(&count))
	require.Equal(t, 1, count)

	got, err := repo.GetOnOrBefore(ctx, domain.RatePair{From: "USD", To: "EUR"}, day(0))
	require.NoError(t, err)
	require.Equal(t, "0.9234567890123456", got.Value.String(), "numeric keeps full precision")
}

func TestRateHistoryRepository_SaveBatch_DefaultsFetchedAt(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateHistoryRepository(pool)
	ctx := context.Background()

	r := historyRate("USD", "EUR", "0.92", day(0))
	r.UpdatedAt = time.Time{}
	require.NoError(t, repo.SaveBatch(ctx, []domain.ExchangeRate{r}))

	got, err := repo.GetOnOrBefore(ctx, r.Pair(), day(0))
	require.NoError(t, err)
	require.False(t, got.UpdatedAt.IsZero())
}

func TestRateHistoryRepository_SaveBatch_Empty(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateHistoryRepository(pool)

	require.NoError(t, repo.SaveBatch(context.Background(), nil))
}

func TestRateHistoryRepository_SaveBatch_RejectsInvalidRate(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateHistoryRepository(pool)

	err := repo.SaveBatch(context.Background(), []domain.ExchangeRate{historyRate("USD", "EUR", "-1", day(0))})
	require.ErrorContains(t, err, "failed to save 1 rates")
}

func TestRateHistoryRepository_LatestAll(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateHistoryRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.SaveBatch(ctx, []domain.ExchangeRate{
		historyRate("USD", "EUR", "0.91", day(-1)),
		historyRate("USD", "EUR", "0.92", day(0)),
		historyRate("GBP", "EUR", "1.15", day(-3)),
	}))

	latest, err := repo.LatestAll(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	require.Equal(t, "GBP-EUR", latest[0].Pair().Key())
	require.Equal(t, "1.15", latest[0].Value.String())
	require.Equal(t, "USD-EUR", latest[1].Pair().Key())
	require.Equal(t, "0.92", latest[1].Value.String())
}

func TestRateHistoryRepository_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateHistoryRepository(pool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.GetOnOrBefore(ctx, domain.RatePair{From: "USD", To: "EUR"}, day(0))
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrNoFxRate)

	_, err = repo.LatestAll(ctx)
	require.Error(t, err)
}

// ---------- PreferenceRepository tests ----------

func TestPreferenceRepository_GetMissing(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewPreferenceRepository(pool)

	_, err := repo.Get(context.Background(), "goals")
	require.ErrorIs(t, err, domain.ErrPreferenceNotFound)
}

func TestPreferenceRepository_SetAndOverwrite(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewPreferenceRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "goals", json.RawMessage(`{"ggr": 1000, "currency": "EUR"}`)))
	got, err := repo.Get(ctx, "goals")
	require.NoError(t, err)
	require.JSONEq(t, `{"ggr": 1000, "currency": "EUR"}`, string(got))

	require.NoError(t, repo.Set(ctx, "goals", json.RawMessage(`[1, 2, 3]`)))
	got, err = repo.Get(ctx, "goals")
	require.NoError(t, err)
	require.JSONEq(t, `[1, 2, 3]`, string(got))
}

func TestPreferenceRepository_SetRejectsInvalidJSON(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewPreferenceRepository(pool)

	err := repo.Set(context.Background(), "broken", json.RawMessage(`{not json`))
	require.ErrorContains(t, err, "failed to save preference")
}
