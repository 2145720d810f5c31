package display

import (
	"errors"
	"fmt"
	"time"

	"fxdisplay/internal/domain"
)

type Severity string

const (
	SeverityFatal    Severity = "fatal"
	SeverityAdvisory Severity = "advisory"
	SeverityInfo     Severity = "info"
)

type NoticeKind string

const (
	KindUnknownCurrency  NoticeKind = "unknown_currency"
	KindNoFxRate         NoticeKind = "no_fx_rate"
	KindConversionFailed NoticeKind = "conversion_failed"
	KindStaleRate        NoticeKind = "stale_rate"
	KindMixedDates       NoticeKind = "mixed_dates"
)

const ActionRefreshRates = "refresh_rates"

// Notice is a dismissible message shown next to a rendered value. Every
// notice offers a manual rate refresh.
type Notice struct {
	Kind        NoticeKind `json:"kind"`
	Severity    Severity   `json:"severity"`
	Message     string     `json:"message"`
	Action      string     `json:"action"`
	Dismissible bool       `json:"dismissible"`
}

func newNotice(kind NoticeKind, severity Severity, msg string) Notice {
	return Notice{Kind: kind, Severity: severity, Message: msg, Action: ActionRefreshRates, Dismissible: true}
}

// NoticeForError maps a conversion or rate error to its notice. Unrecognized
// errors are reported as a failed conversion.
func NoticeForError(err error) Notice {
	switch {
	case errors.Is(err, domain.ErrUnknownCurrency):
		return newNotice(KindUnknownCurrency, SeverityFatal, "unknown currency, showing native values")
	case errors.Is(err, domain.ErrNoFxRate):
		return newNotice(KindNoFxRate, SeverityAdvisory, "no exchange rate available, showing native values")
	default:
		return newNotice(KindConversionFailed, SeverityFatal, "conversion failed, showing native values")
	}
}

// StaleNotice reports how many whole hours old the rate is.
func StaleNotice(r domain.ExchangeRate, now time.Time) Notice {
	hours := int(now.Sub(r.UpdatedAt) / time.Hour)
	return newNotice(KindStaleRate, SeverityAdvisory, fmt.Sprintf("rate is %d hours stale, showing last known value", hours))
}

func MixedDatesNotice() Notice {
	return newNotice(KindMixedDates, SeverityInfo, "total combines rates from different dates")
}
