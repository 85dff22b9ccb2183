package entity

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	invalid := fmt.Errorf("convert: %w", &InvalidCurrencyError{Code: "XXX"})
	assert.ErrorIs(t, invalid, ErrInvalidCurrency)
	assert.NotErrorIs(t, invalid, ErrCurrencyNotInFeed)

	var ice *InvalidCurrencyError
	assert.True(t, errors.As(invalid, &ice))
	assert.Equal(t, "XXX", ice.Code)

	notInFeed := &CurrencyNotInFeedError{Code: "ISK"}
	assert.ErrorIs(t, notInFeed, ErrCurrencyNotInFeed)
	assert.Equal(t, "currency ISK not found in feed", notInFeed.Error())

	cause := errors.New("connection refused")
	upstream := &UpstreamFetchError{Err: cause}
	assert.ErrorIs(t, upstream, ErrUpstreamFetchFailed)
	assert.ErrorIs(t, upstream, cause)
}

func TestRateSnapshotIsIsolatedFromInput(t *testing.T) {
	rates := map[string]float64{"USD": 1.1}
	snap := NewRateSnapshot(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rates)

	rates["USD"] = 2.0
	rates["JPY"] = 160.0

	usd, ok := snap.Rate("USD")
	assert.True(t, ok)
	assert.Equal(t, 1.1, usd)

	_, ok = snap.Rate("JPY")
	assert.False(t, ok)
}

func TestQuoteCrossRate(t *testing.T) {
	q := &Quote{FromRate: 1.1, ToRate: 160.0}
	assert.InDelta(t, 145.4545, q.CrossRate(), 1e-4)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "USD", NormalizeCode(" usd "))
}
