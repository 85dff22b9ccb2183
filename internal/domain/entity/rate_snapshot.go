package entity

import (
	"time"
)

// DateLayout is the calendar date format used by the feed and the API
const DateLayout = "2006-01-02"

// RateSnapshot is one parsed copy of the upstream rate table.
// A snapshot is never mutated after construction.
type RateSnapshot struct {
	Date  time.Time
	Rates map[string]float64
}

// NewRateSnapshot copies rates so later changes to the input cannot leak in
func NewRateSnapshot(date time.Time, rates map[string]float64) *RateSnapshot {
	copied := make(map[string]float64, len(rates))
	for code, rate := range rates {
		copied[code] = rate
	}

	return &RateSnapshot{
		Date:  date,
		Rates: copied,
	}
}

// Rate returns the rate for code relative to the feed's base currency
func (s *RateSnapshot) Rate(code string) (float64, bool) {
	rate, ok := s.Rates[code]
	return rate, ok
}

// Quote holds the two rates needed for a cross conversion, both read from
// the same snapshot.
type Quote struct {
	FromRate float64
	ToRate   float64
	// RateDate is nil when no snapshot has been loaded yet
	RateDate *time.Time
}

// CrossRate returns the amount of To currency bought by one unit of From
func (q *Quote) CrossRate() float64 {
	return q.ToRate / q.FromRate
}

// Conversion is the result of converting an amount between two currencies
type Conversion struct {
	Amount          float64
	From            Currency
	To              Currency
	ConvertedAmount float64
	Rate            float64
	RateDate        *time.Time
}
