package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCurrency is returned when a code is not in the currency registry
	ErrInvalidCurrency = errors.New("invalid currency")
	// ErrCurrencyNotInFeed is returned when a registered code has no rate in the feed
	ErrCurrencyNotInFeed = errors.New("currency not found in feed")
	// ErrUpstreamFetchFailed is returned when refreshing the feed failed
	ErrUpstreamFetchFailed = errors.New("upstream fetch failed")
	// ErrInvalidAmount is returned for amounts that cannot be converted
	ErrInvalidAmount = errors.New("invalid amount")
)

// InvalidCurrencyError names the code that failed registry validation
type InvalidCurrencyError struct {
	Code string
}

func (e *InvalidCurrencyError) Error() string {
	return fmt.Sprintf("invalid currency %s", e.Code)
}

func (e *InvalidCurrencyError) Is(target error) bool {
	return target == ErrInvalidCurrency
}

// CurrencyNotInFeedError names the code that the feed does not cover
type CurrencyNotInFeedError struct {
	Code string
}

func (e *CurrencyNotInFeedError) Error() string {
	return fmt.Sprintf("currency %s not found in feed", e.Code)
}

func (e *CurrencyNotInFeedError) Is(target error) bool {
	return target == ErrCurrencyNotInFeed
}

// UpstreamFetchError wraps network, status and parse failures of a refresh
type UpstreamFetchError struct {
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("upstream fetch failed: %v", e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

func (e *UpstreamFetchError) Is(target error) bool {
	return target == ErrUpstreamFetchFailed
}
