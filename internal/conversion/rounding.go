package conversion

import (
	"fxdisplay/internal/domain"

	"github.com/shopspring/decimal"
)

// Round applies mode at the given number of decimal places. Negative amounts
// round symmetrically to positive ones.
func Round(amount decimal.Decimal, places int32, mode domain.RoundingMode) decimal.Decimal {
	switch mode {
	case domain.RoundUp:
		return amount.RoundUp(places)
	case domain.RoundDown:
		return amount.RoundDown(places)
	case domain.RoundHalfUp:
		return amount.Round(places)
	default:
		return amount.RoundBank(places)
	}
}
