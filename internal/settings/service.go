// Package settings keeps one CurrencySettings value per dashboard session.
package settings

import (
	"fmt"
	"strings"
	"time"

	"fxdisplay/internal/adapters"
	"fxdisplay/internal/domain"
	"fxdisplay/internal/rate"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type CurrencyChecker interface {
	IsSupported(code domain.CurrencyCode) bool
}

type RateStatus interface {
	Snapshot() rate.Snapshot
}

// View is what the dashboard reads: the session's settings together with the
// shared rate store status.
type View struct {
	SessionID uuid.UUID               `json:"session_id"`
	Settings  domain.CurrencySettings `json:"settings"`
	FxRates   []domain.ExchangeRate   `json:"fx_rates"`
	Loading   bool                    `json:"loading"`
	Error     string                  `json:"error,omitempty"`
	State     domain.RefreshState     `json:"state"`
}

// Patch carries optional changes. A nil field is left untouched; an empty
// FxAsOf clears the pinned date.
type Patch struct {
	BaseCurrency       *string `json:"base_currency,omitempty"`
	FxSource           *string `json:"fx_source,omitempty"`
	RoundingMode       *string `json:"rounding_mode,omitempty"`
	Timezone           *string `json:"timezone,omitempty"`
	FxAsOf             *string `json:"fx_as_of,omitempty"`
	ShowInBaseCurrency *bool   `json:"show_in_base_currency,omitempty"`
}

type Service struct {
	sessions adapters.SessionCache
	checker  CurrencyChecker
	rates    RateStatus
	clock    clockwork.Clock
	defaults domain.CurrencySettings
}

func (s *Service) Create() (*domain.Session, error) {
	session := domain.NewSession(uuid.New(), s.defaults, s.clock.Now())
	if err := s.sessions.Add(session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

func (s *Service) Get(id uuid.UUID) (domain.CurrencySettings, error) {
	session, err := s.session(id)
	if err != nil {
		return domain.CurrencySettings{}, err
	}
	return session.Settings(), nil
}

func (s *Service) View(id uuid.UUID) (View, error) {
	session, err := s.session(id)
	if err != nil {
		return View{}, err
	}
	snap := s.rates.Snapshot()
	return View{
		SessionID: id,
		Settings:  session.Settings(),
		FxRates:   snap.Rates,
		Loading:   snap.Loading,
		Error:     snap.Error,
		State:     snap.State,
	}, nil
}

// Apply validates every field of p and publishes the result in one swap, so
// a rejected patch leaves the settings unchanged.
func (s *Service) Apply(id uuid.UUID, p Patch) (domain.CurrencySettings, error) {
	session, err := s.session(id)
	if err != nil {
		return domain.CurrencySettings{}, err
	}
	return session.Update(func(cur domain.CurrencySettings) (domain.CurrencySettings, error) {
		return s.apply(cur, p)
	})
}

func (s *Service) SetBaseCurrency(id uuid.UUID, code string) (domain.CurrencySettings, error) {
	return s.Apply(id, Patch{BaseCurrency: &code})
}

func (s *Service) SetFxSource(id uuid.UUID, source string) (domain.CurrencySettings, error) {
	return s.Apply(id, Patch{FxSource: &source})
}

func (s *Service) SetRoundingMode(id uuid.UUID, mode string) (domain.CurrencySettings, error) {
	return s.Apply(id, Patch{RoundingMode: &mode})
}

func (s *Service) SetTimezone(id uuid.UUID, tz string) (domain.CurrencySettings, error) {
	return s.Apply(id, Patch{Timezone: &tz})
}

func (s *Service) SetFxAsOf(id uuid.UUID, date string) (domain.CurrencySettings, error) {
	return s.Apply(id, Patch{FxAsOf: &date})
}

func (s *Service) SetShowInBaseCurrency(id uuid.UUID, show bool) (domain.CurrencySettings, error) {
	return s.Apply(id, Patch{ShowInBaseCurrency: &show})
}

// Toggle flips show_in_base_currency. Stored amounts and rates are untouched.
func (s *Service) Toggle(id uuid.UUID) (domain.CurrencySettings, error) {
	session, err := s.session(id)
	if err != nil {
		return domain.CurrencySettings{}, err
	}
	return session.Update(func(cur domain.CurrencySettings) (domain.CurrencySettings, error) {
		cur.ShowInBaseCurrency = !cur.ShowInBaseCurrency
		return cur, nil
	})
}

func (s *Service) Delete(id uuid.UUID) {
	s.sessions.Delete(id)
}

func (s *Service) session(id uuid.UUID) (*domain.Session, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return session, nil
}

func (s *Service) apply(cur domain.CurrencySettings, p Patch) (domain.CurrencySettings, error) {
	next := cur
	if p.BaseCurrency != nil {
		code := domain.NormalizeCode(*p.BaseCurrency)
		if !s.checker.IsSupported(code) {
			return cur, fmt.Errorf("%w: base currency %q", domain.ErrUnknownCurrency, *p.BaseCurrency)
		}
		next.BaseCurrency = code
	}
	if p.FxSource != nil {
		src := domain.RateSource(strings.ToLower(strings.TrimSpace(*p.FxSource)))
		if !src.Valid() {
			return cur, fmt.Errorf("%w: unknown fx source %q", domain.ErrInvalidSettings, *p.FxSource)
		}
		next.FxSource = src
	}
	if p.RoundingMode != nil {
		mode, err := domain.ParseRoundingMode(strings.ToLower(strings.TrimSpace(*p.RoundingMode)))
		if err != nil {
			return cur, err
		}
		next.RoundingMode = mode
	}
	if p.Timezone != nil {
		tz := strings.TrimSpace(*p.Timezone)
		if _, err := time.LoadLocation(tz); err != nil || tz == "" {
			return cur, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidSettings, *p.Timezone)
		}
		next.Timezone = tz
	}
	if p.FxAsOf != nil {
		raw := strings.TrimSpace(*p.FxAsOf)
		if raw == "" {
			next.FxAsOf = nil
		} else {
			d, err := domain.ParseDate(raw)
			if err != nil {
				return cur, fmt.Errorf("%w: %w", domain.ErrInvalidSettings, err)
			}
			next.FxAsOf = &d
		}
	}
	if p.ShowInBaseCurrency != nil {
		next.ShowInBaseCurrency = *p.ShowInBaseCurrency
	}
	return next, nil
}

// NewService validates defaults against the registry; invalid fields fall
// back to the built-in defaults.
func NewService(sessions adapters.SessionCache, checker CurrencyChecker, rates RateStatus, clock clockwork.Clock, defaults domain.CurrencySettings) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	builtin := domain.DefaultSettings()
	if !checker.IsSupported(defaults.BaseCurrency) {
		defaults.BaseCurrency = builtin.BaseCurrency
	}
	if !defaults.FxSource.Valid() {
		defaults.FxSource = builtin.FxSource
	}
	if !defaults.RoundingMode.Valid() {
		defaults.RoundingMode = builtin.RoundingMode
	}
	if _, err := time.LoadLocation(defaults.Timezone); err != nil || defaults.Timezone == "" {
		defaults.Timezone = builtin.Timezone
	}
	return &Service{sessions: sessions, checker: checker, rates: rates, clock: clock, defaults: defaults}
}
