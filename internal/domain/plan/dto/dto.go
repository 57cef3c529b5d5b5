package dto

import "time"

// CreatePlanRequest is the body of POST /api/v1/telegram/channels/{channelId}/plans
type CreatePlanRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"durationDays"`
}

// UpdatePlanRequest is a partial plan update
type UpdatePlanRequest struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	DurationDays *int     `json:"durationDays,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

// PlanResponse is the owner's view of a plan
type PlanResponse struct {
	ID           uint      `json:"id"`
	ChannelID    uint      `json:"channelId"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"durationDays"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
