// Package core holds the committee domain model and the derived-view
// computations every page renders from.
//
// This file contains amount parsing. All money in the system is a whole
// number of rupees; there is no fractional handling anywhere.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a form value to a positive whole-rupee amount.
//
// Digits only: no sign, no separators, no decimals. Returns ErrInvalidAmount
// for anything else, including zero.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatRupees renders an amount for display, e.g. "₹1500" or "-₹500".
func FormatRupees(amount int64) string {
	if amount < 0 {
		return "-₹" + strconv.FormatInt(-amount, 10)
	}
	return "₹" + strconv.FormatInt(amount, 10)
}
