package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
)

// Error codes exposed to API clients
const (
	codeInvalidCurrency     = "invalid_currency"
	codeCurrencyNotInFeed   = "currency_not_in_feed"
	codeUpstreamUnavailable = "upstream_unavailable"
	codeInvalidAmount       = "invalid_amount"
	codeNotFound            = "not_found"
	codeInternal            = "internal_error"
)

func sendJSON(w http.ResponseWriter, log logger.Logger, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", map[string]interface{}{
			"status_code": statusCode,
			"error":       err.Error(),
		})
	}
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, code, message string, statusCode int, requestID string) {
	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"code":        code,
		"message":     message,
	})

	sendJSON(w, log, statusCode, ErrorResponse{
		Status: statusError,
		Message: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// sendServiceError maps a conversion error to its HTTP representation
func sendServiceError(w http.ResponseWriter, log logger.Logger, err error, requestID string) {
	var (
		invalid   *entity.InvalidCurrencyError
		notInFeed *entity.CurrencyNotInFeedError
	)

	switch {
	case errors.As(err, &invalid):
		sendErrorResponse(w, log, codeInvalidCurrency,
			fmt.Sprintf("Invalid currency %s", invalid.Code), http.StatusOK, requestID)
	case errors.As(err, &notInFeed):
		log.Warn("Currency missing from rate feed", map[string]interface{}{
			"request_id": requestID,
			"code":       notInFeed.Code,
		})
		sendErrorResponse(w, log, codeCurrencyNotInFeed,
			fmt.Sprintf("Currency %s not found in feed", notInFeed.Code), http.StatusNotFound, requestID)
	case errors.Is(err, entity.ErrInvalidAmount):
		sendErrorResponse(w, log, codeInvalidAmount, "Invalid amount", http.StatusBadRequest, requestID)
	case errors.Is(err, entity.ErrUpstreamFetchFailed):
		log.Error("Rate feed unavailable", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, codeUpstreamUnavailable,
			"Exchange rate feed is unavailable, please try again later", http.StatusBadGateway, requestID)
	default:
		log.Error("Unexpected error", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, codeInternal,
			"An unexpected error occurred", http.StatusInternalServerError, requestID)
	}
}

func formatDate(date *time.Time) *string {
	if date == nil {
		return nil
	}

	formatted := date.Format(entity.DateLayout)
	return &formatted
}

func toCurrencyResponse(c entity.Currency) CurrencyResponse {
	return CurrencyResponse{Code: c.Code, Name: c.Name}
}
