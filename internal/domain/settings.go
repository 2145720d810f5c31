package domain

import (
	"fmt"
	"time"
)

type RoundingMode string

const (
	RoundBanker RoundingMode = "banker"
	RoundUp     RoundingMode = "up"
	RoundDown   RoundingMode = "down"
	RoundHalfUp RoundingMode = "half_up"
)

func (m RoundingMode) Valid() bool {
	switch m {
	case RoundBanker, RoundUp, RoundDown, RoundHalfUp:
		return true
	}
	return false
}

func ParseRoundingMode(raw string) (RoundingMode, error) {
	m := RoundingMode(raw)
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown rounding mode %q", ErrInvalidSettings, raw)
	}
	return m, nil
}

// CurrencySettings is the per-session display configuration. Values are
// replaced as a whole, never mutated in place.
type CurrencySettings struct {
	BaseCurrency       CurrencyCode `json:"base_currency"`
	FxSource           RateSource   `json:"fx_source"`
	RoundingMode       RoundingMode `json:"rounding_mode"`
	Timezone           string       `json:"timezone"`
	FxAsOf             *time.Time   `json:"fx_as_of,omitempty"`
	ShowInBaseCurrency bool         `json:"show_in_base_currency"`
}

func DefaultSettings() CurrencySettings {
	return CurrencySettings{
		BaseCurrency: "EUR",
		FxSource:     SourceBackend,
		RoundingMode: RoundBanker,
		Timezone:     "UTC",
	}
}

// Location falls back to UTC when the timezone cannot be loaded.
func (s CurrencySettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type RefreshState string

const (
	StateIdle    RefreshState = "idle"
	StateLoading RefreshState = "loading"
	StateReady   RefreshState = "ready"
	StateErrored RefreshState = "errored"
)
