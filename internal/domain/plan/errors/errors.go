package errors

import "errors"

var (
	// ErrPlanNotFound is returned when no plan matches the lookup
	ErrPlanNotFound = errors.New("plan not found")
)
