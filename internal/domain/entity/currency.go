package entity

import "strings"

// Currency is an entry of the currency registry
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NormalizeCode trims and upper-cases a currency code as received from callers
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
