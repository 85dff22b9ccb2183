// Package service internal/application/service/conversion_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/registry"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/metrics"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/middleware"
)

// RateProvider supplies base-relative rates for two currencies from one snapshot
type RateProvider interface {
	Quote(ctx context.Context, from, to string) (*entity.Quote, error)
}

// ConversionService converts amounts between registered currencies
type ConversionService struct {
	rates    RateProvider
	registry *registry.Registry
	logger   logger.Logger
	metrics  *metrics.Metrics
}

// NewConversionService creates a new conversion service
func NewConversionService(rates RateProvider, reg *registry.Registry, log logger.Logger, m *metrics.Metrics) *ConversionService {
	if reg == nil {
		reg = registry.Default()
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ConversionService{
		rates:    rates,
		registry: reg,
		logger:   log,
		metrics:  m,
	}
}

// Convert converts amount from one currency to another. Both codes are
// checked against the registry, from first, before any rate is requested.
func (s *ConversionService) Convert(ctx context.Context, from, to string, amount float64) (*entity.Conversion, error) {
	requestID := middleware.GetRequestID(ctx)
	from, to = entity.NormalizeCode(from), entity.NormalizeCode(to)

	s.logger.Info("Converting currency", map[string]interface{}{
		"request_id": requestID,
		"from":       from,
		"to":         to,
		"amount":     amount,
	})

	fromCurrency, ok := s.registry.Lookup(from)
	if !ok {
		s.countConversion("invalid_currency")
		return nil, &entity.InvalidCurrencyError{Code: from}
	}

	toCurrency, ok := s.registry.Lookup(to)
	if !ok {
		s.countConversion("invalid_currency")
		return nil, &entity.InvalidCurrencyError{Code: to}
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		s.countConversion("invalid_amount")
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidAmount, amount)
	}

	quote, err := s.rates.Quote(ctx, from, to)
	if err != nil {
		s.logger.Error("Failed to get exchange rates", map[string]interface{}{
			"request_id": requestID,
			"from":       from,
			"to":         to,
			"error":      err.Error(),
		})
		s.countConversion(conversionFailure(err))
		return nil, fmt.Errorf("failed to get exchange rates: %w", err)
	}

	rate := quote.CrossRate()
	converted := amount * rate

	fields := map[string]interface{}{
		"request_id":       requestID,
		"from":             from,
		"to":               to,
		"amount":           amount,
		"rate":             rate,
		"converted_amount": converted,
	}
	if quote.RateDate != nil {
		fields["rate_date"] = quote.RateDate.Format(entity.DateLayout)
	}
	s.logger.Info("Conversion completed", fields)
	s.countConversion("success")

	return &entity.Conversion{
		Amount:          amount,
		From:            fromCurrency,
		To:              toCurrency,
		ConvertedAmount: converted,
		Rate:            rate,
		RateDate:        quote.RateDate,
	}, nil
}

func conversionFailure(err error) string {
	switch {
	case errors.Is(err, entity.ErrCurrencyNotInFeed):
		return "not_in_feed"
	case errors.Is(err, entity.ErrUpstreamFetchFailed):
		return "upstream_error"
	default:
		return "error"
	}
}

func (s *ConversionService) countConversion(result string) {
	if s.metrics != nil {
		s.metrics.ConversionsTotal.WithLabelValues(result).Inc()
	}
}
