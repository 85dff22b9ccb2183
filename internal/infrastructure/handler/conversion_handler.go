// Package handler internal/infrastructure/handler/conversion_handler.go
package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/damon-houk/ecb-currency-exchange/internal/application/service"
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// ConversionHandler handles HTTP requests for currency conversion
type ConversionHandler struct {
	service *service.ConversionService
	logger  logger.Logger
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(service *service.ConversionService, log logger.Logger) *ConversionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ConversionHandler{
		service: service,
		logger:  log,
	}
}

// Convert handles converting an amount between two currencies
func (h *ConversionHandler) Convert(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	vars := mux.Vars(r)
	from, to, rawAmount := vars["from"], vars["to"], vars["amount"]

	amount, err := parseAmount(rawAmount)
	if err != nil {
		h.logger.Warn("Invalid amount", map[string]interface{}{
			"request_id": requestID,
			"amount":     rawAmount,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, codeInvalidAmount,
			fmt.Sprintf("Invalid amount %s", rawAmount), http.StatusBadRequest, requestID)
		return
	}

	conversion, err := h.service.Convert(r.Context(), from, to, amount)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, h.logger, http.StatusOK, ConversionResponse{
		Status:          statusSuccess,
		Amount:          conversion.Amount,
		BaseCurrency:    toCurrencyResponse(conversion.From),
		TargetCurrency:  toCurrencyResponse(conversion.To),
		ConvertedAmount: conversion.ConvertedAmount,
		Rate:            conversion.Rate,
		UpdatedDatetime: formatDate(conversion.RateDate),
	})
}

// parseAmount accepts any finite decimal, negative amounts included
func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q", entity.ErrInvalidAmount, raw)
	}
	return amount, nil
}

// RegisterRoutes registers the conversion handler routes
func (h *ConversionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/convert/{from}/{to}/{amount}", h.Convert).Methods("GET")

	h.logger.Info("Conversion routes registered", map[string]interface{}{
		"routes": []string{
			"GET /convert/{from}/{to}/{amount}",
		},
	})
}
