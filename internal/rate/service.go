package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxdisplay/internal/adapters"
	"fxdisplay/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service answers rate lookups from the live store and falls back to the
// persisted history for historical and pinned-date queries.
type Service struct {
	store     *Store
	history   adapters.RateHistoryRepository
	refresher *Refresher
}

func (s *Service) GetRate(ctx context.Context, pair domain.RatePair, q domain.RateQuery) (domain.ExchangeRate, error) {
	if q.Source == "" {
		q.Source = domain.SourceBackend
	}

	if q.Source != domain.SourceHistorical {
		r, err := s.store.GetRate(ctx, pair, q)
		if err == nil || q.AsOf == nil || q.Source == domain.SourceFixed || !errors.Is(err, domain.ErrNoFxRate) {
			return r, err
		}
	}

	asOf := domain.DateOf(s.store.clock.Now(), time.UTC)
	if q.AsOf != nil {
		asOf = *q.AsOf
	}
	if pair.From == pair.To {
		return domain.IdentityRate(pair.From, asOf, domain.SourceHistorical), nil
	}
	return s.historical(ctx, pair, asOf)
}

func (s *Service) historical(ctx context.Context, pair domain.RatePair, asOf time.Time) (domain.ExchangeRate, error) {
	if s.history == nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: %s/%s, no rate history configured", domain.ErrNoFxRate, pair.From, pair.To)
	}

	r, err := s.history.GetOnOrBefore(ctx, pair, asOf)
	if errors.Is(err, domain.ErrNoFxRate) {
		var inv domain.ExchangeRate
		inv, err = s.history.GetOnOrBefore(ctx, pair.Reversed(), asOf)
		if err == nil {
			r = inv.Inverse()
		}
	}
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("historical rate %s/%s on %s: %w", pair.From, pair.To, asOf.Format(domain.DateLayout), err)
	}

	if !WithinTolerance(r.Date, asOf, s.store.asOfTolerance) {
		return domain.ExchangeRate{}, fmt.Errorf("%w: latest %s/%s is dated %s, too old for %s", domain.ErrNoFxRate,
			pair.From, pair.To, r.Date.Format(domain.DateLayout), asOf.Format(domain.DateLayout))
	}
	r.Source = domain.SourceHistorical
	r.Stale = false
	return r, nil
}

func (s *Service) SetFixedRate(from, to domain.CurrencyCode, value decimal.Decimal, date time.Time) (domain.ExchangeRate, error) {
	return s.store.SetFixedRate(from, to, value, date)
}

// Refresh runs one refresh and returns its execution id.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	execID := uuid.NewString()
	return execID, s.refresher.Refresh(ctx, execID)
}

// WarmUp seeds the store with the latest persisted rate of every pair.
func (s *Service) WarmUp(ctx context.Context) (int, error) {
	if s.history == nil {
		return 0, nil
	}
	rates, err := s.history.LatestAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load rate history: %w", err)
	}
	return s.store.Seed(rates), nil
}

func (s *Service) Snapshot() Snapshot {
	return s.store.Snapshot()
}

func NewService(store *Store, history adapters.RateHistoryRepository, refresher *Refresher) *Service {
	return &Service{store: store, history: history, refresher: refresher}
}
