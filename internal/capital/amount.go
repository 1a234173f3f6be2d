// Package capital keeps the capital field of the simulation form consistent:
// the amount in cents is the source of truth and the field always shows its
// formatted currency string.
package capital

import (
	"strconv"

	"github.com/iwvelando/capital-simulator/pkg/constants"
	"github.com/iwvelando/capital-simulator/pkg/format"
	"github.com/shopspring/decimal"
)

// Amount is a non-negative capital amount in minor units (cents), never
// above constants.MaxMinorUnits.
type Amount struct {
	minor int64
}

// FromMinor returns the Amount for minor cents, clamped to [0, MaxMinorUnits].
func FromMinor(minor int64) Amount {
	switch {
	case minor < 0:
		minor = 0
	case minor > constants.MaxMinorUnits:
		minor = constants.MaxMinorUnits
	}
	return Amount{minor: minor}
}

// ParseInput reads the digits of text as cents. Only the first
// MaxInputDigits digits are kept and the result is clamped; an input with no
// digits is zero.
func ParseInput(text string) Amount {
	digits := StripNonDigits(text)
	if len(digits) > constants.MaxInputDigits {
		digits = digits[:constants.MaxInputDigits]
	}
	if digits == "" {
		return Amount{}
	}

	minor, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// Unreachable for at most MaxInputDigits ASCII digits.
		return Amount{}
	}
	return FromMinor(minor)
}

// StripNonDigits drops every character of text that is not an ASCII digit.
func StripNonDigits(text string) string {
	buf := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if c := text[i]; c >= '0' && c <= '9' {
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// Minor returns the amount in cents.
func (a Amount) Minor() int64 {
	return a.minor
}

// Decimal returns the amount in reais.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromInt(a.minor).DivRound(decimal.NewFromInt(constants.MinorUnitsPerUnit), 2)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.minor == 0
}

// String returns the display form, e.g. "R$ 1.234,56".
func (a Amount) String() string {
	return format.Currency(a.Decimal())
}
