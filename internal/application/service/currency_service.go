package service

import (
	"context"

	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/registry"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/metrics"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/middleware"
)

// CurrencyService answers questions about the supported currencies
type CurrencyService struct {
	registry *registry.Registry
	logger   logger.Logger
	metrics  *metrics.Metrics
}

// NewCurrencyService creates a new currency service
func NewCurrencyService(reg *registry.Registry, log logger.Logger, m *metrics.Metrics) *CurrencyService {
	if reg == nil {
		reg = registry.Default()
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CurrencyService{
		registry: reg,
		logger:   log,
		metrics:  m,
	}
}

// ListCurrencies returns every supported currency in registry order
func (s *CurrencyService) ListCurrencies() []entity.Currency {
	return s.registry.All()
}

// GetCurrency looks up a single code, ignoring case
func (s *CurrencyService) GetCurrency(ctx context.Context, code string) (entity.Currency, error) {
	currency, ok := s.registry.Lookup(code)
	if !ok {
		s.logger.Info("Unknown currency requested", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"code":       code,
		})
		s.countLookup("invalid")
		return entity.Currency{}, &entity.InvalidCurrencyError{Code: entity.NormalizeCode(code)}
	}

	s.countLookup("found")
	return currency, nil
}

func (s *CurrencyService) countLookup(result string) {
	if s.metrics != nil {
		s.metrics.CurrencyLookupsTotal.WithLabelValues(result).Inc()
	}
}
