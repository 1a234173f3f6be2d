package capital

import (
	"github.com/iwvelando/capital-simulator/internal/form"
)

// Formatter rewrites the capital field on every edit.
type Formatter struct {
	field form.Field
}

// NewFormatter attaches a Formatter to field.
func NewFormatter(field form.Field) *Formatter {
	return &Formatter{field: field}
}

// HandleInput is called after each edit of the field. It replaces the field
// text with its formatted form and returns the amount it represents. It never
// validates and never performs I/O.
func (f *Formatter) HandleInput() Amount {
	amount := ParseInput(f.field.Value())
	f.field.SetValue(amount.String())
	return amount
}

// Format returns the display form of raw field text.
func Format(text string) string {
	return ParseInput(text).String()
}
