package entities

import (
	"time"

	"gorm.io/gorm"
)

// PlanModel is the GORM model for the plans table
type PlanModel struct {
	ID           uint   `gorm:"primaryKey"`
	ChannelID    uint   `gorm:"not null;index"`
	Name         string `gorm:"not null"`
	Price        float64 `gorm:"not null"`
	DurationDays int    `gorm:"not null"`
	Status       string `gorm:"default:ACTIVE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

// ToEntity converts the model to a domain entity
func (m *PlanModel) ToEntity() *Plan {
	return &Plan{
		ID:           m.ID,
		ChannelID:    m.ChannelID,
		Name:         m.Name,
		Price:        m.Price,
		DurationDays: m.DurationDays,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
