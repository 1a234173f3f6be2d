// Package form defines the input controls the simulator reads from. Hosts
// (the CLI, the web form server, tests) construct the controls and hand them
// to the components that need them.
package form

import "sync"

// Field is a single text-valued form control.
type Field interface {
	Value() string
	SetValue(value string)
}

// Controls groups the controls of the simulation form. Company is nil for
// the risk-profile-only variant of the form.
type Controls struct {
	Capital Field
	Risk    Field
	Company Field
}

// Input is an in-memory Field.
type Input struct {
	mu    sync.RWMutex
	value string
}

// NewInput returns an Input holding value.
func NewInput(value string) *Input {
	return &Input{value: value}
}

// Value returns the current text of the input.
func (i *Input) Value() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.value
}

// SetValue replaces the text of the input.
func (i *Input) SetValue(value string) {
	i.mu.Lock()
	i.value = value
	i.mu.Unlock()
}
