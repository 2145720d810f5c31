package cache

import (
	"errors"
	"fmt"
	"time"

	"fxdisplay/internal/domain"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

var ErrSessionRejected = errors.New("session cache rejected the session")

type RistrettoSessionCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewSessionCache(maxItems int64, ttl time.Duration) (*RistrettoSessionCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxItems,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache failed: %w", err)
	}
	return &RistrettoSessionCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoSessionCache) Get(id uuid.UUID) (*domain.Session, bool) {
	if v, ok := c.cache.Get(id.String()); ok {
		s, ok := v.(*domain.Session)
		return s, ok
	}
	return nil, false
}

// Add stores the session and waits until it is readable. Settings updates
// happen inside the session, so a session is written to the cache only once.
func (c *RistrettoSessionCache) Add(s *domain.Session) error {
	key := s.ID.String()
	var ok bool
	if c.ttl > 0 {
		ok = c.cache.SetWithTTL(key, s, 1, c.ttl)
	} else {
		ok = c.cache.Set(key, s, 1)
	}
	if !ok {
		return ErrSessionRejected
	}
	c.cache.Wait()
	// the admission policy may still drop the item after a successful Set
	if _, ok := c.cache.Get(key); !ok {
		return ErrSessionRejected
	}
	return nil
}

func (c *RistrettoSessionCache) Delete(id uuid.UUID) {
	c.cache.Del(id.String())
}

func (c *RistrettoSessionCache) Close() { c.cache.Close() }
