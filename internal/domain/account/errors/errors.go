package errors

import "errors"

var (
	// ErrAccountNotFound is returned when no account matches the lookup
	ErrAccountNotFound = errors.New("account not found")
)
