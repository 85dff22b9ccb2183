package handler

import (
	"errors"
	"net/http"

	"github.com/damon-houk/ecb-currency-exchange/internal/application/service"
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// CurrencyHandler handles HTTP requests for currency metadata
type CurrencyHandler struct {
	service *service.CurrencyService
	logger  logger.Logger
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(service *service.CurrencyService, log logger.Logger) *CurrencyHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CurrencyHandler{
		service: service,
		logger:  log,
	}
}

// ListCurrencies returns every supported currency
func (h *CurrencyHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies := h.service.ListCurrencies()

	resp := CurrencyListResponse{
		Status:  statusSuccess,
		Message: make([]CurrencyResponse, 0, len(currencies)),
	}
	for _, c := range currencies {
		resp.Message = append(resp.Message, toCurrencyResponse(c))
	}

	sendJSON(w, h.logger, http.StatusOK, resp)
}

// GetCurrency looks up one currency code, ignoring case
func (h *CurrencyHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	code := mux.Vars(r)["code"]

	currency, err := h.service.GetCurrency(r.Context(), code)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCurrency) {
			sendErrorResponse(w, h.logger, codeInvalidCurrency, "Invalid currency", http.StatusOK, requestID)
			return
		}
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, h.logger, http.StatusOK, CurrencyListResponse{
		Status:  statusSuccess,
		Message: []CurrencyResponse{toCurrencyResponse(currency)},
	})
}

// RegisterRoutes registers the currency handler routes
func (h *CurrencyHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/available-currencies", h.ListCurrencies).Methods("GET")
	router.HandleFunc("/available-currencies/{code}", h.GetCurrency).Methods("GET")

	h.logger.Info("Currency routes registered", map[string]interface{}{
		"routes": []string{
			"GET /available-currencies",
			"GET /available-currencies/{code}",
		},
	})
}
