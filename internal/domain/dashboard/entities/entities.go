package entities

import "time"

// Summary aggregates the creator's headline numbers
type Summary struct {
	TotalRevenue        float64
	ActiveSubscriptions int64
	ChannelCount        int64
	AccountCount        int64
}

// Sale is one row of the recent sales listing
type Sale struct {
	OrderID     uint
	ChannelID   uint
	ChannelName string
	PlanName    string
	Amount      float64
	CreatedAt   time.Time
}
