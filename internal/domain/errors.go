package domain

import "errors"

var (
	ErrUnknownCurrency    = errors.New("unknown currency")
	ErrNoFxRate           = errors.New("no fx rate available")
	ErrConversionFailed   = errors.New("conversion failed")
	ErrInvalidRate        = errors.New("invalid exchange rate")
	ErrEmptyAmounts       = errors.New("multi-currency amount must not be empty")
	ErrDuplicateCurrency  = errors.New("duplicate currency in multi-currency amount")
	ErrSessionNotFound    = errors.New("session not found")
	ErrPreferenceNotFound = errors.New("preference not found")
	ErrInvalidSettings    = errors.New("invalid currency settings")
)
