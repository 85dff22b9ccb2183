// Package ecb parses the eurofxref XML documents published by the ECB
package ecb

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
)

// envelope mirrors gesmes:Envelope; namespaces are matched by local name
type envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Subject string   `xml:"subject"`
	Sender  string   `xml:"Sender>name"`
	Days    []day    `xml:"Cube>Cube"`
}

// day is a dated cube holding the rates published on that date
type day struct {
	Time  string     `xml:"time,attr"`
	Rates []exchange `xml:"Cube"`
}

type exchange struct {
	Currency string  `xml:"currency,attr"`
	Rate     float64 `xml:"rate,attr"`
}

var errNoRates = errors.New("document contains no dated rates")

// Parser implements service.FeedParser for eurofxref documents
type Parser struct{}

// NewParser creates a new eurofxref parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts the most recent dated cube of the document. The daily feed
// has exactly one; the historic feeds list the newest date first.
func (p *Parser) Parse(document []byte) (*entity.RateSnapshot, error) {
	var env envelope
	if err := xml.NewDecoder(bytes.NewReader(document)).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode feed document: %w", err)
	}

	if len(env.Days) == 0 {
		return nil, errNoRates
	}
	latest := env.Days[0]

	date, err := time.ParseInLocation(entity.DateLayout, latest.Time, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("failed to parse publication date '%s': %w", latest.Time, err)
	}

	rates := make(map[string]float64, len(latest.Rates))
	for _, ex := range latest.Rates {
		code := entity.NormalizeCode(ex.Currency)
		if code == "" {
			return nil, fmt.Errorf("rate without currency on %s", latest.Time)
		}
		if ex.Rate <= 0 {
			return nil, fmt.Errorf("invalid rate for %s: %f", code, ex.Rate)
		}
		rates[code] = ex.Rate
	}

	if len(rates) == 0 {
		return nil, errNoRates
	}

	return entity.NewRateSnapshot(date, rates), nil
}
