package rate

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fxdisplay/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

const (
	DefaultStaleAfter    = 24 * time.Hour
	DefaultAsOfTolerance = 72 * time.Hour
)

type StoreConfig struct {
	StaleAfter    time.Duration
	AsOfTolerance time.Duration
}

// table is published whole; it is never modified after the swap.
type table struct {
	backend     map[domain.RatePair]domain.ExchangeRate
	fixed       map[domain.RatePair]domain.ExchangeRate
	state       domain.RefreshState
	loading     bool
	err         error
	lastRefresh time.Time
	applied     uint64
}

func (t *table) clone() *table {
	cp := *t
	return &cp
}

func (t *table) ratesFor(source domain.RateSource) map[domain.RatePair]domain.ExchangeRate {
	switch source {
	case domain.SourceFixed:
		return t.fixed
	case domain.SourceHistorical:
		return nil
	default:
		return t.backend
	}
}

// Snapshot is a point-in-time copy of the store for status reporting.
type Snapshot struct {
	State       domain.RefreshState   `json:"state"`
	Loading     bool                  `json:"loading"`
	Error       string                `json:"error,omitempty"`
	LastRefresh *time.Time            `json:"last_refresh,omitempty"`
	Rates       []domain.ExchangeRate `json:"fx_rates"`
}

// Store keeps the latest rate per pair for the backend and fixed sources.
// Reads are lock-free; writers are serialized and publish a new table.
type Store struct {
	current atomic.Pointer[table]
	mu      sync.Mutex
	issued  uint64

	clock         clockwork.Clock
	staleAfter    time.Duration
	asOfTolerance time.Duration
}

func (s *Store) GetRate(_ context.Context, pair domain.RatePair, q domain.RateQuery) (domain.ExchangeRate, error) {
	if q.Source == "" {
		q.Source = domain.SourceBackend
	}
	if pair.From == pair.To {
		date := domain.DateOf(s.clock.Now(), time.UTC)
		if q.AsOf != nil {
			date = *q.AsOf
		}
		return domain.IdentityRate(pair.From, date, q.Source), nil
	}

	rates := s.current.Load().ratesFor(q.Source)
	r, ok := rates[pair]
	if !ok {
		inv, found := rates[pair.Reversed()]
		if !found {
			return domain.ExchangeRate{}, fmt.Errorf("%w: %s/%s (%s)", domain.ErrNoFxRate, pair.From, pair.To, q.Source)
		}
		r = inv.Inverse()
	}

	if q.AsOf != nil && !WithinTolerance(r.Date, *q.AsOf, s.asOfTolerance) {
		return domain.ExchangeRate{}, fmt.Errorf("%w: %s/%s dated %s does not cover %s", domain.ErrNoFxRate,
			pair.From, pair.To, r.Date.Format(domain.DateLayout), q.AsOf.Format(domain.DateLayout))
	}

	r.Stale = s.IsStale(r)
	return r, nil
}

// IsStale reports whether the rate entered the store longer than stale_after
// ago. A rate exactly at the boundary is still fresh.
func (s *Store) IsStale(r domain.ExchangeRate) bool {
	if r.UpdatedAt.IsZero() {
		return false
	}
	return s.clock.Since(r.UpdatedAt) > s.staleAfter
}

// WithinTolerance reports whether a rate dated date may answer a query pinned
// to asOf: on or before asOf and no more than tolerance older.
func WithinTolerance(date, asOf time.Time, tolerance time.Duration) bool {
	if date.After(asOf) {
		return false
	}
	return asOf.Sub(date) <= tolerance
}

func (s *Store) SetFixedRate(from, to domain.CurrencyCode, value decimal.Decimal, date time.Time) (domain.ExchangeRate, error) {
	if date.IsZero() {
		date = domain.DateOf(s.clock.Now(), time.UTC)
	}
	r := domain.ExchangeRate{
		From:      from,
		To:        to,
		Value:     value,
		Date:      date,
		Source:    domain.SourceFixed,
		UpdatedAt: s.clock.Now(),
	}
	if err := r.Validate(); err != nil {
		return domain.ExchangeRate{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Load().clone()
	next.fixed = maps.Clone(next.fixed)
	next.fixed[r.Pair()] = r
	s.current.Store(next)
	return r, nil
}

// Seed loads persisted rates into the backend map without touching the
// refresh state. Pairs already present are kept.
func (s *Store) Seed(rates []domain.ExchangeRate) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Load().clone()
	next.backend = maps.Clone(next.backend)
	added := 0
	for _, r := range rates {
		if r.Validate() != nil {
			continue
		}
		if _, ok := next.backend[r.Pair()]; ok {
			continue
		}
		r.Source = domain.SourceBackend
		r.Stale = false
		next.backend[r.Pair()] = r
		added++
	}
	s.current.Store(next)
	return added
}

// BeginRefresh marks the store as loading and returns the token the refresh
// must present when it completes.
func (s *Store) BeginRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	next := s.current.Load().clone()
	next.loading = true
	next.state = domain.StateLoading
	s.current.Store(next)
	return s.issued
}

// CompleteRefresh merges fetched rates into the backend map. Results older
// than an already applied refresh are discarded and false is returned.
func (s *Store) CompleteRefresh(token uint64, rates []domain.ExchangeRate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.current.Load()
	if token <= cur.applied {
		return false
	}

	now := s.clock.Now()
	next := cur.clone()
	next.backend = maps.Clone(cur.backend)
	for _, r := range rates {
		r.Source = domain.SourceBackend
		r.Stale = false
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = now
		}
		next.backend[r.Pair()] = r
	}
	next.applied = token
	next.err = nil
	next.lastRefresh = now
	next.state = domain.StateReady
	next.loading = token < s.issued
	if next.loading {
		next.state = domain.StateLoading
	}
	s.current.Store(next)
	return true
}

// FailRefresh records a failed refresh. Cached rates stay authoritative.
func (s *Store) FailRefresh(token uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.current.Load()
	if token <= cur.applied || token < s.issued {
		return false
	}
	next := cur.clone()
	next.applied = token
	next.err = err
	next.loading = false
	next.state = domain.StateErrored
	s.current.Store(next)
	return true
}

func (s *Store) Snapshot() Snapshot {
	t := s.current.Load()
	snap := Snapshot{State: t.state, Loading: t.loading}
	if t.err != nil {
		snap.Error = t.err.Error()
	}
	if !t.lastRefresh.IsZero() {
		lr := t.lastRefresh
		snap.LastRefresh = &lr
	}

	snap.Rates = make([]domain.ExchangeRate, 0, len(t.backend)+len(t.fixed))
	for _, r := range t.backend {
		r.Stale = s.IsStale(r)
		snap.Rates = append(snap.Rates, r)
	}
	for _, r := range t.fixed {
		r.Stale = s.IsStale(r)
		snap.Rates = append(snap.Rates, r)
	}
	slices.SortFunc(snap.Rates, func(a, b domain.ExchangeRate) int {
		if c := strings.Compare(string(a.Source), string(b.Source)); c != 0 {
			return c
		}
		return strings.Compare(a.Pair().Key(), b.Pair().Key())
	})
	return snap
}

func NewStore(clock clockwork.Clock, cfg StoreConfig) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}
	if cfg.AsOfTolerance <= 0 {
		cfg.AsOfTolerance = DefaultAsOfTolerance
	}
	s := &Store{clock: clock, staleAfter: cfg.StaleAfter, asOfTolerance: cfg.AsOfTolerance}
	s.current.Store(&table{
		backend: map[domain.RatePair]domain.ExchangeRate{},
		fixed:   map[domain.RatePair]domain.ExchangeRate{},
		state:   domain.StateIdle,
	})
	return s
}
