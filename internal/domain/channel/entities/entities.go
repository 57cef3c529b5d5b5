package entities

import "time"

// Channel lifecycle status
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Channel is a locally mirrored record of a remote Telegram channel,
// owned by exactly one account (and transitively one user)
type Channel struct {
	ID              uint
	UserID          uint
	AccountID       uint
	RemoteID        int64
	Slug            string
	Name            string
	Description     string
	RichDescription string
	BannerKey       string
	ContactEmail    string
	ContactPhone    string
	BotAdded        bool
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// BannerURL is a presigned, time-limited access URL. Derived, never stored.
	BannerURL string
}

// ChannelUpdate carries the mutable display fields of a partial update.
// Nil means "leave unchanged".
type ChannelUpdate struct {
	Name            *string
	Description     *string
	RichDescription *string
}

// ContactUpdate carries the mutable contact fields of a partial update
type ContactUpdate struct {
	ContactEmail *string
	ContactPhone *string
}
