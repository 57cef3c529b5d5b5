package entities

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionModel is the GORM model for the subscriptions table
type SubscriptionModel struct {
	ID               uint    `gorm:"primaryKey"`
	UserID           uint    `gorm:"not null;index:idx_subscriptions_user_channel"`
	ChannelID        uint    `gorm:"not null;index:idx_subscriptions_user_channel"`
	PlanID           uint    `gorm:"not null"`
	PlanName         string  `gorm:"not null"`
	PlanPrice        float64 `gorm:"not null"`
	PlanDurationDays int     `gorm:"not null"`
	Status           string  `gorm:"not null;index"`
	ExpiryDate       time.Time `gorm:"not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToEntity converts the model to a domain entity
func (m *SubscriptionModel) ToEntity() *Subscription {
	return &Subscription{
		ID:               m.ID,
		UserID:           m.UserID,
		ChannelID:        m.ChannelID,
		PlanID:           m.PlanID,
		PlanName:         m.PlanName,
		PlanPrice:        m.PlanPrice,
		PlanDurationDays: m.PlanDurationDays,
		Status:           m.Status,
		ExpiryDate:       m.ExpiryDate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// OrderModel is the GORM model for the orders table
type OrderModel struct {
	ID             uint    `gorm:"primaryKey"`
	UserID         uint    `gorm:"not null;index"`
	ChannelID      uint    `gorm:"not null;index"`
	PlanID         uint    `gorm:"not null"`
	SubscriptionID uint    `gorm:"not null"`
	Amount         float64 `gorm:"not null"`
	CreatedAt      time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToEntity converts the model to a domain entity
func (m *OrderModel) ToEntity() *Order {
	return &Order{
		ID:             m.ID,
		UserID:         m.UserID,
		ChannelID:      m.ChannelID,
		PlanID:         m.PlanID,
		SubscriptionID: m.SubscriptionID,
		Amount:         m.Amount,
		CreatedAt:      m.CreatedAt,
	}
}
