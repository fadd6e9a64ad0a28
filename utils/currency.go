package utils

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// FormatBRL formats an amount as Brazilian reais with two decimals.
// Example: 90 -> "R$ 90.00"
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}

// ParseAmount accepts both "45.00" and "45,00".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d.Round(2), nil
}
