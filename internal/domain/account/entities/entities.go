package entities

import "time"

// Account represents one phone-number-bound Telegram session belonging to one user.
// The session blob is an opaque credential and never leaves the service.
type Account struct {
	ID            uint
	UserID        uint
	PhoneNumber   string
	SessionBlob   string
	PhoneCodeHash string
	Authenticated bool
	Verified      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPendingCode reports whether a verification attempt is in flight:
// both the unauthenticated session blob and the code hash are present.
func (a *Account) HasPendingCode() bool {
	return a.SessionBlob != "" && a.PhoneCodeHash != ""
}
