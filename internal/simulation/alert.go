package simulation

import (
	"fmt"
	"io"
	"sync"
)

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a function to an Alerter.
type AlerterFunc func(message string)

// Alert calls f(message).
func (f AlerterFunc) Alert(message string) {
	f(message)
}

// WriterAlerter prints each alert on its own line.
type WriterAlerter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterAlerter returns an Alerter writing to w.
func NewWriterAlerter(w io.Writer) *WriterAlerter {
	return &WriterAlerter{w: w}
}

// Alert writes message followed by a newline. Write errors are dropped.
func (a *WriterAlerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, _ = fmt.Fprintln(a.w, message)
}

// Recorder keeps every alert it receives.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Alert records message.
func (r *Recorder) Alert(message string) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
}

// Messages returns the recorded alerts in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Last returns the most recent alert, or "" when there is none.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}
