package entities

import "time"

// Event types published to the sales stream
const (
	EventSubscriptionCreated   = "subscription.created"
	EventSubscriptionQueued    = "subscription.queued"
	EventSubscriptionActivated = "subscription.activated"
	EventSubscriptionExpired   = "subscription.expired"
)

// SubscriptionEvent is the payload published to the sales stream for
// analytics consumers
type SubscriptionEvent struct {
	Type           string    `json:"type"`
	SubscriptionID uint      `json:"subscriptionId"`
	UserID         uint      `json:"userId"`
	ChannelID      uint      `json:"channelId"`
	PlanID         uint      `json:"planId"`
	PlanName       string    `json:"planName"`
	Amount         float64   `json:"amount"`
	ExpiryDate     time.Time `json:"expiryDate"`
	OccurredAt     time.Time `json:"occurredAt"`
}
