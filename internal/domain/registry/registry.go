// Package registry holds the static list of currencies the service accepts
package registry

import (
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
)

var defaultCurrencies = []entity.Currency{
	{Code: "USD", Name: "United States Dollar"},
	{Code: "EUR", Name: "Euro"},
	{Code: "JPY", Name: "Japanese Yen"},
	{Code: "BGN", Name: "Bulgarian Lev"},
	{Code: "CZK", Name: "Czech Koruna"},
	{Code: "DKK", Name: "Danish Krone"},
	{Code: "GBP", Name: "Pound Sterling"},
	{Code: "HUF", Name: "Hungarian Forint"},
	{Code: "PLN", Name: "Polish Zloty"},
	{Code: "RON", Name: "Romanian Leu"},
	{Code: "SEK", Name: "Swedish Krona"},
	{Code: "CHF", Name: "Swiss Franc"},
	{Code: "ISK", Name: "Icelandic Krona"},
	{Code: "NOK", Name: "Norwegian Krone"},
	{Code: "TRY", Name: "Turkish Lira"},
	{Code: "AUD", Name: "Australian Dollar"},
	{Code: "BRL", Name: "Brazilian Real"},
	{Code: "CAD", Name: "Canadian Dollar"},
	{Code: "CNY", Name: "Chinese Yuan Renminbi"},
	{Code: "HKD", Name: "Hong Kong Dollar"},
	{Code: "IDR", Name: "Indonesian Rupiah"},
	{Code: "ILS", Name: "Israeli Shekel"},
	{Code: "INR", Name: "Indian Rupee"},
	{Code: "KRW", Name: "South Korean Won"},
	{Code: "MXN", Name: "Mexican Peso"},
	{Code: "MYR", Name: "Malaysian Ringgit"},
	{Code: "NZD", Name: "New Zealand Dollar"},
	{Code: "PHP", Name: "Philippine Peso"},
	{Code: "SGD", Name: "Singapore Dollar"},
	{Code: "THB", Name: "Thai Baht"},
	{Code: "ZAR", Name: "South African Rand"},
}

// Registry is an immutable, ordered set of currencies
type Registry struct {
	currencies []entity.Currency
	byCode     map[string]entity.Currency
}

var defaultRegistry = New(defaultCurrencies)

// Default returns the registry of currencies published by the ECB daily feed
func Default() *Registry {
	return defaultRegistry
}

// New builds a registry from currencies, keeping their order.
// Codes are normalized; a later duplicate code is ignored.
func New(currencies []entity.Currency) *Registry {
	r := &Registry{
		currencies: make([]entity.Currency, 0, len(currencies)),
		byCode:     make(map[string]entity.Currency, len(currencies)),
	}

	for _, c := range currencies {
		c.Code = entity.NormalizeCode(c.Code)
		if _, exists := r.byCode[c.Code]; exists {
			continue
		}
		r.currencies = append(r.currencies, c)
		r.byCode[c.Code] = c
	}

	return r
}

// All returns a copy of the registered currencies in declaration order
func (r *Registry) All() []entity.Currency {
	out := make([]entity.Currency, len(r.currencies))
	copy(out, r.currencies)
	return out
}

// Lookup finds a currency by code, ignoring case
func (r *Registry) Lookup(code string) (entity.Currency, bool) {
	c, ok := r.byCode[entity.NormalizeCode(code)]
	return c, ok
}

// Size returns the number of registered currencies
func (r *Registry) Size() int {
	return len(r.currencies)
}
