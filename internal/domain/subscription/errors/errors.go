package errors

import "errors"

var (
	// ErrSubscriptionNotFound is returned when no subscription matches the lookup
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
