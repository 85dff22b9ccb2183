package handler

const (
	statusSuccess = "success"
	statusError   = "error"
)

// CurrencyResponse is a single registry entry
type CurrencyResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CurrencyListResponse represents the response for the currency endpoints.
// Single lookups also answer with a one-element list.
type CurrencyListResponse struct {
	Status  string             `json:"status"`
	Message []CurrencyResponse `json:"message"`
}

// ConversionResponse represents the response for the conversion endpoint
type ConversionResponse struct {
	Status          string           `json:"status"`
	Amount          float64          `json:"amount"`
	BaseCurrency    CurrencyResponse `json:"base_currency"`
	TargetCurrency  CurrencyResponse `json:"target_currency"`
	ConvertedAmount float64          `json:"converted_amount"`
	Rate            float64          `json:"rate"`
	// UpdatedDatetime is the snapshot publication date, null when unknown
	UpdatedDatetime *string `json:"updated_datetime"`
}

// ErrorDetail carries a machine readable code and a human readable message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message ErrorDetail `json:"message"`
}

// RootResponse is the greeting served on /
type RootResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness and the cached snapshot date
type HealthResponse struct {
	Status       string  `json:"status"`
	SnapshotDate *string `json:"snapshot_date"`
}
