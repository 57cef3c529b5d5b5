package entities

import "time"

// Plan status
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Plan is a priced, timed subscription tier owned by one channel.
// Subscriptions snapshot its name, price and duration at creation time,
// so later edits never rewrite sold access windows.
type Plan struct {
	ID           uint
	ChannelID    uint
	Name         string
	Price        float64
	DurationDays int
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlanUpdate carries the mutable fields of a partial update.
// Nil means "leave unchanged".
type PlanUpdate struct {
	Name         *string
	Price        *float64
	DurationDays *int
	Status       *string
}
