package simulation

import "fmt"

// ValidationError is returned when the form holds no usable capital. No
// request is sent.
type ValidationError struct {
	Capital string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid capital %q: %v", e.Capital, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ApplicationError is returned when the optimizer answered with
// success:false.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return "optimizer rejected simulation: " + e.Message
}

// TransportError is returned when the optimizer could not be reached or its
// answer could not be decoded.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "optimizer request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
