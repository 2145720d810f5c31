package currency

import (
	"errors"

	"fxdisplay/internal/domain"
)

var (
	ErrFromRequired    = errors.New("source currency is required")
	ErrToRequired      = errors.New("target currency is required")
	ErrSameCodes       = errors.New("source and target currencies must be different")
	ErrFromUnsupported = errors.New("source currency not supported")
	ErrToUnsupported   = errors.New("target currency not supported")
)

// ValidatePair checks a pair that must go through the rate store.
func (r *Registry) ValidatePair(from, to domain.CurrencyCode) error {
	if err := r.ValidateConversion(from, to); err != nil {
		return err
	}
	if from == to {
		return ErrSameCodes
	}
	return nil
}

// ValidateConversion is ValidatePair without the identity check; converting
// a currency into itself is allowed.
func (r *Registry) ValidateConversion(from, to domain.CurrencyCode) error {
	if from == "" {
		return ErrFromRequired
	}
	if to == "" {
		return ErrToRequired
	}
	if !r.IsSupported(from) {
		return ErrFromUnsupported
	}
	if !r.IsSupported(to) {
		return ErrToUnsupported
	}
	return nil
}
