package service

import (
	"context"
	"testing"

	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/registry"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCurrencies(t *testing.T) {
	service := NewCurrencyService(nil, quietLogger(), nil)

	currencies := service.ListCurrencies()
	require.Len(t, currencies, 31)
	assert.Equal(t, "USD", currencies[0].Code)
	assert.Equal(t, "ZAR", currencies[len(currencies)-1].Code)
}

func TestGetCurrency(t *testing.T) {
	m := metrics.NewMetrics()
	reg := registry.New([]entity.Currency{{Code: "EUR", Name: "Euro"}})
	service := NewCurrencyService(reg, quietLogger(), m)
	ctx := context.Background()

	currency, err := service.GetCurrency(ctx, "eur")
	require.NoError(t, err)
	assert.Equal(t, entity.Currency{Code: "EUR", Name: "Euro"}, currency)

	_, err = service.GetCurrency(ctx, "usd")
	var invalid *entity.InvalidCurrencyError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "USD", invalid.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CurrencyLookupsTotal.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CurrencyLookupsTotal.WithLabelValues("invalid")))
}
