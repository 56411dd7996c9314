package domain

import "errors"

// ErrInvalidInput is the sentinel every input validation failure wraps
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a rejected input field
type InputError struct {
	Field   string
	Value   string
	Message string
}

func (e *InputError) Error() string {
	if e.Value != "" {
		return "invalid " + e.Field + " " + quote(e.Value) + ": " + e.Message
	}
	return "invalid " + e.Field + ": " + e.Message
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func quote(s string) string {
	return "\"" + s + "\""
}
