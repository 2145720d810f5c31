package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type RateSource string

const (
	SourceBackend    RateSource = "backend"
	SourceFixed      RateSource = "fixed"
	SourceHistorical RateSource = "historical"
)

func (s RateSource) Valid() bool {
	switch s {
	case SourceBackend, SourceFixed, SourceHistorical:
		return true
	}
	return false
}

type RatePair struct {
	From CurrencyCode
	To   CurrencyCode
}

func (p RatePair) Reversed() RatePair {
	return RatePair{
		From: p.To,
		To:   p.From,
	}
}

// Key renders the pair as "FROM-TO".
func (p RatePair) Key() string { return string(p.From) + "-" + string(p.To) }

// ExchangeRate converts one unit of From into Value units of To.
type ExchangeRate struct {
	From      CurrencyCode    `json:"from"`
	To        CurrencyCode    `json:"to"`
	Value     decimal.Decimal `json:"rate"`
	Date      time.Time       `json:"date"`
	Source    RateSource      `json:"source"`
	UpdatedAt time.Time       `json:"updated_at"`
	// Stale is set by lookups, never persisted.
	Stale bool `json:"stale"`
}

func (r ExchangeRate) Pair() RatePair { return RatePair{From: r.From, To: r.To} }

// Inverse returns the rate for the reversed pair, keeping date and source.
func (r ExchangeRate) Inverse() ExchangeRate {
	inv := r
	inv.From, inv.To = r.To, r.From
	inv.Value = decimal.NewFromInt(1).DivRound(r.Value, 16)
	return inv
}

func (r ExchangeRate) Validate() error {
	if r.From == "" || r.To == "" {
		return fmt.Errorf("%w: empty currency code", ErrInvalidRate)
	}
	if r.From == r.To {
		return fmt.Errorf("%w: %s/%s is an identity pair", ErrInvalidRate, r.From, r.To)
	}
	if !r.Value.IsPositive() {
		return fmt.Errorf("%w: %s/%s has non-positive value %s", ErrInvalidRate, r.From, r.To, r.Value)
	}
	return nil
}

// DateOf truncates t to its calendar date in loc, returned as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", raw, err)
	}
	return d, nil
}

// RateQuery selects which stored rate a lookup may return.
type RateQuery struct {
	Source RateSource
	AsOf   *time.Time
}

// IdentityRate is the implicit 1:1 rate for same-currency lookups.
func IdentityRate(code CurrencyCode, date time.Time, source RateSource) ExchangeRate {
	return ExchangeRate{From: code, To: code, Value: decimal.NewFromInt(1), Date: date, Source: source}
}
