// Package core holds the transaction and period types shared by the
// aggregation engine and its collaborators.
//
// This file contains the lenient amount parsing used when decoding records
// coming from the transaction store.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to a decimal value.
//
// It never fails hard: empty or non-numeric input yields zero and false, so
// a malformed record simply contributes nothing to a total. Only a dot is
// accepted as decimal separator.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, true
//	ParseAmount(" 100 ") -> 100, true
//	ParseAmount("abc")   -> 0, false
//	ParseAmount("")      -> 0, false
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
