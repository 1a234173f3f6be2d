package capital

import (
	"testing"

	"github.com/iwvelando/capital-simulator/internal/form"
)

func TestFormatterHandleInput(t *testing.T) {
	field := form.NewInput("")
	formatter := NewFormatter(field)

	amount := formatter.HandleInput()
	if field.Value() != "R$ 0,00" {
		t.Fatalf("empty field rendered %q, expected R$ 0,00", field.Value())
	}
	if !amount.IsZero() {
		t.Fatalf("expected zero amount, got %d", amount.Minor())
	}

	// Typing appends to the displayed text; each keystroke shifts the cents.
	steps := []struct {
		key      string
		expected string
	}{
		{"1", "R$ 0,01"},
		{"2", "R$ 0,12"},
		{"3", "R$ 1,23"},
		{"4", "R$ 12,34"},
		{"5", "R$ 123,45"},
		{"6", "R$ 1.234,56"},
		{"x", "R$ 1.234,56"},
		{"7", "R$ 12.345,67"},
		{"8", "R$ 100.000,00"},
	}

	for _, step := range steps {
		field.SetValue(field.Value() + step.key)
		formatter.HandleInput()
		if field.Value() != step.expected {
			t.Fatalf("after typing %q field = %q, expected %q", step.key, field.Value(), step.expected)
		}
	}
}

func TestFormatterBackspace(t *testing.T) {
	field := form.NewInput("R$ 1.234,56")
	formatter := NewFormatter(field)

	current := field.Value()
	field.SetValue(current[:len(current)-1])
	amount := formatter.HandleInput()

	if field.Value() != "R$ 123,45" {
		t.Fatalf("after backspace field = %q, expected R$ 123,45", field.Value())
	}
	if amount.Minor() != 12345 {
		t.Fatalf("after backspace amount = %d, expected 12345", amount.Minor())
	}
}

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"":             "R$ 0,00",
		"5":            "R$ 0,05",
		"100000":       "R$ 1.000,00",
		"R$ 1.000,000": "R$ 10.000,00",
		"abc":          "R$ 0,00",
	}

	for input, expected := range tests {
		if got := Format(input); got != expected {
			t.Errorf("Format(%q) = %q, expected %q", input, got, expected)
		}
	}
}
