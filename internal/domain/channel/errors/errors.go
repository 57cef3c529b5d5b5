package errors

import "errors"

var (
	// ErrChannelNotFound is returned when no channel matches the lookup
	ErrChannelNotFound = errors.New("channel not found")
)
