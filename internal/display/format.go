package display

import (
	"strings"
	"unicode"

	"fxdisplay/internal/conversion"
	"fxdisplay/internal/domain"

	"github.com/shopspring/decimal"
)

// FormatMoney renders amount with the currency symbol, a leading sign,
// thousands grouping and exactly the currency's precision: "-$1,234.50".
func FormatMoney(amount decimal.Decimal, cfg domain.CurrencyConfig, mode domain.RoundingMode) string {
	rounded := conversion.Round(amount, cfg.Precision, mode)
	digits := rounded.Abs().StringFixed(cfg.Precision)

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(cfg.Symbol)
	if needsSpace(cfg.Symbol) {
		b.WriteByte(' ')
	}
	b.WriteString(groupThousands(digits))
	return b.String()
}

// FormatUnknown is used when the currency has no registry entry.
func FormatUnknown(a domain.CurrencyAmount) string {
	return groupThousandsSigned(a.Amount.StringFixed(2)) + " " + string(a.Currency)
}

// FormatRate renders a rate with four decimals: "0.9200".
func FormatRate(v decimal.Decimal) string {
	return v.StringFixed(4)
}

func needsSpace(symbol string) bool {
	if symbol == "" {
		return false
	}
	r := []rune(symbol)
	return unicode.IsLetter(r[len(r)-1]) && len(r) > 1
}

func groupThousandsSigned(s string) string {
	if strings.HasPrefix(s, "-") {
		return "-" + groupThousands(s[1:])
	}
	return groupThousands(s)
}

func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
