// Package conversion converts amounts between currencies and rounds the result
// at the target currency's minor unit.
package conversion

import (
	"context"
	"fmt"

	"fxdisplay/internal/domain"

	"github.com/shopspring/decimal"
)

type RateLookup interface {
	GetRate(ctx context.Context, pair domain.RatePair, q domain.RateQuery) (domain.ExchangeRate, error)
}

type PrecisionSource interface {
	Precision(code domain.CurrencyCode) (int32, error)
}

type Engine struct {
	rates    RateLookup
	registry PrecisionSource
}

type Request struct {
	Amount domain.CurrencyAmount
	To     domain.CurrencyCode
	Mode   domain.RoundingMode
	Query  domain.RateQuery
}

// Convert converts amount from one currency to another using the latest
// backend rate.
func (e *Engine) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode, mode domain.RoundingMode) (domain.ConvertedAmount, error) {
	return e.ConvertWith(ctx, Request{
		Amount: domain.CurrencyAmount{Currency: from, Amount: amount},
		To:     to,
		Mode:   mode,
		Query:  domain.RateQuery{Source: domain.SourceBackend},
	})
}

func (e *Engine) ConvertWith(ctx context.Context, req Request) (domain.ConvertedAmount, error) {
	from, to := req.Amount.Currency, req.To
	res := domain.ConvertedAmount{Currency: to, Original: req.Amount}

	// identity is exact, no rounding
	if from == to {
		res.Amount = req.Amount.Amount
		return res, nil
	}

	places, err := e.registry.Precision(to)
	if err != nil {
		return domain.ConvertedAmount{}, err
	}
	if _, err = e.registry.Precision(from); err != nil {
		return domain.ConvertedAmount{}, err
	}

	if req.Amount.Amount.IsZero() {
		res.Amount = decimal.Zero.Round(places)
		return res, nil
	}

	rate, err := e.rates.GetRate(ctx, domain.RatePair{From: from, To: to}, req.Query)
	if err != nil {
		return domain.ConvertedAmount{}, fmt.Errorf("convert %s to %s: %w", from, to, err)
	}
	if !rate.Value.IsPositive() {
		return domain.ConvertedAmount{}, fmt.Errorf("%w: %s/%s rate %s is not positive", domain.ErrConversionFailed, from, to, rate.Value)
	}

	res.Amount = Round(req.Amount.Amount.Mul(rate.Value), places, req.Mode)
	res.Rate = rate
	return res, nil
}

// DetectMixedDates reports whether the conversions used rates from more than
// one as-of date. Conversions that did not use a rate are ignored.
func DetectMixedDates(amounts []domain.ConvertedAmount) bool {
	var first string
	for _, a := range amounts {
		if !a.UsedRate() {
			continue
		}
		d := a.Rate.Date.Format(domain.DateLayout)
		if first == "" {
			first = d
			continue
		}
		if d != first {
			return true
		}
	}
	return false
}

type Total struct {
	Amount      domain.CurrencyAmount
	Conversions []domain.ConvertedAmount
	MixedDates  bool
	Stale       bool
}

// Total converts every entry into base and sums the rounded results. Any
// single failure fails the whole total.
func (e *Engine) Total(ctx context.Context, amounts []domain.CurrencyAmount, base domain.CurrencyCode, mode domain.RoundingMode, q domain.RateQuery) (Total, error) {
	places, err := e.registry.Precision(base)
	if err != nil {
		return Total{}, err
	}

	sum := decimal.Zero.Round(places)
	conversions := make([]domain.ConvertedAmount, 0, len(amounts))
	stale := false
	for _, a := range amounts {
		c, convErr := e.ConvertWith(ctx, Request{Amount: a, To: base, Mode: mode, Query: q})
		if convErr != nil {
			return Total{}, convErr
		}
		stale = stale || c.Rate.Stale
		sum = sum.Add(c.Amount)
		conversions = append(conversions, c)
	}

	return Total{
		Amount:      domain.CurrencyAmount{Currency: base, Amount: Round(sum, places, mode)},
		Conversions: conversions,
		MixedDates:  DetectMixedDates(conversions),
		Stale:       stale,
	}, nil
}

func NewEngine(rates RateLookup, registry PrecisionSource) *Engine {
	return &Engine{rates: rates, registry: registry}
}
