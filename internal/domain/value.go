package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Value is the closed set of amount shapes the display layer renders:
// PlainAmount, ConvertedAmount and MultiCurrencyAmount.
type Value interface {
	isValue()
}

type PlainAmount struct {
	CurrencyAmount
}

// ConvertedAmount keeps the pre-conversion amount and the rate used.
type ConvertedAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency CurrencyCode    `json:"currency"`
	Original CurrencyAmount  `json:"original"`
	Rate     ExchangeRate    `json:"rate"`
}

// Identity reports whether no conversion happened (same currency).
func (c ConvertedAmount) Identity() bool { return c.Original.Currency == c.Currency }

type MultiCurrencyAmount struct {
	Amounts     []CurrencyAmount `json:"amounts"`
	TotalInBase *CurrencyAmount  `json:"total_in_base,omitempty"`
}

func (PlainAmount) isValue()         {}
func (ConvertedAmount) isValue()     {}
func (MultiCurrencyAmount) isValue() {}

// NewMultiCurrencyAmount rejects empty lists and repeated currency codes.
func NewMultiCurrencyAmount(amounts []CurrencyAmount) (MultiCurrencyAmount, error) {
	if len(amounts) == 0 {
		return MultiCurrencyAmount{}, ErrEmptyAmounts
	}
	seen := make(map[CurrencyCode]struct{}, len(amounts))
	for _, a := range amounts {
		if _, ok := seen[a.Currency]; ok {
			return MultiCurrencyAmount{}, fmt.Errorf("%w: %s", ErrDuplicateCurrency, a.Currency)
		}
		seen[a.Currency] = struct{}{}
	}
	cp := make([]CurrencyAmount, len(amounts))
	copy(cp, amounts)
	return MultiCurrencyAmount{Amounts: cp}, nil
}

// UsedRate is false for identity and zero-amount conversions, which never
// consult the rate store.
func (c ConvertedAmount) UsedRate() bool {
	return !c.Identity() && c.Rate.Value.IsPositive()
}
