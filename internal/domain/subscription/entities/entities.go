package entities

import "time"

// Subscription status
const (
	StatusActive  = "ACTIVE"
	StatusExpired = "EXPIRED"
)

// Subscription is a user's paid access window to a channel. Plan name, price
// and duration are snapshotted at creation time so later plan edits never
// rewrite sold access windows.
//
// An upgrade purchased while a subscription is still active is queued: it is
// created with status EXPIRED and an expiry extending the current window, and
// the activation sweep promotes it once the predecessor lapses.
type Subscription struct {
	ID               uint
	UserID           uint
	ChannelID        uint
	PlanID           uint
	PlanName         string
	PlanPrice        float64
	PlanDurationDays int
	Status           string
	ExpiryDate       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Queued reports whether the subscription is waiting for its predecessor to
// lapse: carried as EXPIRED but with an expiry still in the future
func (s *Subscription) Queued(now time.Time) bool {
	return s.Status == StatusExpired && s.ExpiryDate.After(now)
}

// Order records a completed sale for the dashboard and analytics stream
type Order struct {
	ID             uint
	UserID         uint
	ChannelID      uint
	PlanID         uint
	SubscriptionID uint
	Amount         float64
	CreatedAt      time.Time
}
