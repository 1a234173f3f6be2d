// Package validation provides common validation utilities.
package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/capital-simulator/pkg/constants"
	"github.com/shopspring/decimal"
)

// ErrNonPositiveCapital is returned when a capital amount is zero or negative.
var ErrNonPositiveCapital = errors.New("capital must be a positive number")

// knownRiskProfiles lists the labels used by both optimizer versions.
var knownRiskProfiles = map[string]struct{}{
	"leve":        {},
	"moderada":    {},
	"grave":       {},
	"conservador": {},
	"moderado":    {},
	"agressivo":   {},
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatText && format != constants.OutputFormatJSON {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatText, constants.OutputFormatJSON, format)
	}
	return nil
}

// ValidateCapital rejects zero and negative amounts.
func ValidateCapital(capital decimal.Decimal) error {
	if !capital.IsPositive() {
		return fmt.Errorf("%w, got %s", ErrNonPositiveCapital, capital.String())
	}
	return nil
}

// IsKnownRiskProfile reports whether profile is one of the labels the
// optimizer is known to understand. The set is open-ended, so unknown labels
// are still valid input.
func IsKnownRiskProfile(profile string) bool {
	_, ok := knownRiskProfiles[profile]
	return ok
}
