// Package currency holds the static currency table used for display and rounding.
package currency

import (
	"fmt"
	"maps"
	"slices"

	"fxdisplay/internal/domain"
)

var defaultTable = []domain.CurrencyConfig{
	{Code: "EUR", Symbol: "€", Flag: "🇪🇺", Name: "Euro", Precision: 2, ColorClass: "badge-blue"},
	{Code: "USD", Symbol: "$", Flag: "🇺🇸", Name: "US Dollar", Precision: 2, ColorClass: "badge-green"},
	{Code: "GBP", Symbol: "£", Flag: "🇬🇧", Name: "British Pound", Precision: 2, ColorClass: "badge-purple"},
	{Code: "RUB", Symbol: "₽", Flag: "🇷🇺", Name: "Russian Ruble", Precision: 2, ColorClass: "badge-red"},
	{Code: "CAD", Symbol: "C$", Flag: "🇨🇦", Name: "Canadian Dollar", Precision: 2, ColorClass: "badge-red"},
	{Code: "BRL", Symbol: "R$", Flag: "🇧🇷", Name: "Brazilian Real", Precision: 2, ColorClass: "badge-yellow"},
	{Code: "TRY", Symbol: "₺", Flag: "🇹🇷", Name: "Turkish Lira", Precision: 2, ColorClass: "badge-orange"},
	{Code: "KZT", Symbol: "₸", Flag: "🇰🇿", Name: "Kazakhstani Tenge", Precision: 2, ColorClass: "badge-cyan"},
	{Code: "JPY", Symbol: "¥", Flag: "🇯🇵", Name: "Japanese Yen", Precision: 0, ColorClass: "badge-gray"},
	{Code: "KWD", Symbol: "KD", Flag: "🇰🇼", Name: "Kuwaiti Dinar", Precision: 3, ColorClass: "badge-teal"},
	{Code: "USDT", Symbol: "₮", Flag: "🪙", Name: "Tether", Precision: 8, ColorClass: "badge-emerald"},
	{Code: "BTC", Symbol: "₿", Flag: "🪙", Name: "Bitcoin", Precision: 8, ColorClass: "badge-amber"},
}

type Registry struct {
	configs map[domain.CurrencyCode]domain.CurrencyConfig // read only
	codes   []domain.CurrencyCode                         // read only, sorted
}

// NewRegistry builds a registry from the built-in table.
func NewRegistry() *Registry {
	return NewRegistryFrom(defaultTable)
}

// NewRegistryFrom builds a registry from configs; later entries win on duplicate codes.
func NewRegistryFrom(configs []domain.CurrencyConfig) *Registry {
	m := make(map[domain.CurrencyCode]domain.CurrencyConfig, len(configs))
	for _, c := range configs {
		m[c.Code] = c
	}
	codes := slices.Collect(maps.Keys(m))
	slices.Sort(codes)
	return &Registry{configs: m, codes: codes}
}

func (r *Registry) GetConfig(code domain.CurrencyCode) (domain.CurrencyConfig, error) {
	c, ok := r.configs[code]
	if !ok {
		return domain.CurrencyConfig{}, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, code)
	}
	return c, nil
}

func (r *Registry) Precision(code domain.CurrencyCode) (int32, error) {
	c, err := r.GetConfig(code)
	if err != nil {
		return 0, err
	}
	return c.Precision, nil
}

func (r *Registry) IsSupported(code domain.CurrencyCode) bool {
	_, ok := r.configs[code]
	return ok
}

func (r *Registry) SupportedCodes() []domain.CurrencyCode {
	return slices.Clone(r.codes)
}
