package domain

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Session owns one dashboard session's settings. Settings are published as
// immutable values; Update swaps them with compare-and-swap.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	settings  atomic.Pointer[CurrencySettings]
}

func NewSession(id uuid.UUID, settings CurrencySettings, createdAt time.Time) *Session {
	s := &Session{ID: id, CreatedAt: createdAt}
	s.settings.Store(&settings)
	return s
}

func (s *Session) Settings() CurrencySettings {
	return *s.settings.Load()
}

// Update applies fn to the current settings and publishes the result. fn may
// run more than once under contention and must not have side effects.
func (s *Session) Update(fn func(CurrencySettings) (CurrencySettings, error)) (CurrencySettings, error) {
	for {
		cur := s.settings.Load()
		next, err := fn(*cur)
		if err != nil {
			return *cur, err
		}
		if s.settings.CompareAndSwap(cur, &next) {
			return next, nil
		}
	}
}
