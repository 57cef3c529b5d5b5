package domain

import (
	"errors"
	"fmt"
)

// Structured vendor error kinds. The adapter translates vendor error codes
// into these at its boundary so no caller ever matches on free-text messages.
var (
	// ErrInvalidCode is returned when the vendor reports a mismatched or expired login code
	ErrInvalidCode = errors.New("invalid or expired verification code")

	// ErrTwoFactorRequired is returned when the account has a second factor enabled.
	// Terminal for the OTP flow: there is no password recovery path.
	ErrTwoFactorRequired = errors.New("two-factor authentication is enabled for this account")

	// ErrSessionConflict is returned on AUTH_KEY_DUPLICATED-class invalidation.
	// Remediation differs from every other vendor error: the stored session
	// must be wiped and the user forced back through OTP.
	ErrSessionConflict = errors.New("session invalidated by a concurrent login")

	// ErrNotAuthorized is returned when a stored session is no longer authorized
	ErrNotAuthorized = errors.New("session is not authorized")
)

// VendorError wraps any other vendor or transport failure
type VendorError struct {
	Err error
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("telegram request failed: %v", e.Err)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

// NewVendorError wraps err as a generic vendor failure
func NewVendorError(err error) *VendorError {
	return &VendorError{Err: err}
}
