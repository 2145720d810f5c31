package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CurrencyCode string

func (c CurrencyCode) String() string { return string(c) }

// NormalizeCode trims and upper-cases raw user input.
func NormalizeCode(raw string) CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// CurrencyConfig is the static display metadata of a currency.
type CurrencyConfig struct {
	Code       CurrencyCode `json:"code"`
	Symbol     string       `json:"symbol"`
	Flag       string       `json:"flag"`
	Name       string       `json:"name"`
	Precision  int32        `json:"precision"`
	ColorClass string       `json:"color_class"`
}

type CurrencyAmount struct {
	Currency CurrencyCode    `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}
