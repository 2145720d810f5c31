package adapters

import (
	"context"
	"encoding/json"
	"time"

	"fxdisplay/internal/domain"

	"github.com/google/uuid"
)

type RateClient interface {
	GetExchangeRates(ctx context.Context, base domain.CurrencyCode) ([]domain.ExchangeRate, error)
}

type RateHistoryRepository interface {
	SaveBatch(ctx context.Context, rates []domain.ExchangeRate) error
	GetOnOrBefore(ctx context.Context, pair domain.RatePair, asOf time.Time) (domain.ExchangeRate, error)
	LatestAll(ctx context.Context) ([]domain.ExchangeRate, error)
}

type PreferenceRepository interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
}

type SessionCache interface {
	Get(id uuid.UUID) (*domain.Session, bool)
	Add(session *domain.Session) error
	Delete(id uuid.UUID)
}
