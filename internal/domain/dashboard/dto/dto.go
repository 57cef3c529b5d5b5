package dto

import "time"

// SummaryResponse is the body of GET /api/v1/dashboard/summary
type SummaryResponse struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	ActiveSubscriptions int64   `json:"activeSubscriptions"`
	ChannelCount        int64   `json:"channelCount"`
	AccountCount        int64   `json:"accountCount"`
}

// SaleResponse is one entry of GET /api/v1/dashboard/sales
type SaleResponse struct {
	OrderID     uint      `json:"orderId"`
	ChannelID   uint      `json:"channelId"`
	ChannelName string    `json:"channelName"`
	PlanName    string    `json:"planName"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}
