package dto

import "time"

// SubscriptionResponse is the user's view of a subscription
type SubscriptionResponse struct {
	ID               uint      `json:"id"`
	ChannelID        uint      `json:"channelId"`
	PlanID           uint      `json:"planId"`
	PlanName         string    `json:"planName"`
	PlanPrice        float64   `json:"planPrice"`
	PlanDurationDays int       `json:"planDurationDays"`
	Status           string    `json:"status"`
	Queued           bool      `json:"queued"`
	ExpiryDate       time.Time `json:"expiryDate"`
	CreatedAt        time.Time `json:"createdAt"`
}
