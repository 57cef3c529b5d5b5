package entities

import (
	"time"

	"gorm.io/gorm"
)

// ChannelModel is the GORM model for the channels table
type ChannelModel struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;index"`
	AccountID       uint   `gorm:"not null;index"`
	RemoteID        int64  `gorm:"not null;index"`
	Slug            string `gorm:"uniqueIndex;not null"`
	Name            string `gorm:"not null"`
	Description     string
	RichDescription string `gorm:"type:text"`
	BannerKey       string
	ContactEmail    string
	ContactPhone    string
	BotAdded        bool   `gorm:"default:false"`
	Status          string `gorm:"default:INACTIVE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (ChannelModel) TableName() string {
	return "channels"
}

// ToEntity converts the model to a domain entity
func (m *ChannelModel) ToEntity() *Channel {
	return &Channel{
		ID:              m.ID,
		UserID:          m.UserID,
		AccountID:       m.AccountID,
		RemoteID:        m.RemoteID,
		Slug:            m.Slug,
		Name:            m.Name,
		Description:     m.Description,
		RichDescription: m.RichDescription,
		BannerKey:       m.BannerKey,
		ContactEmail:    m.ContactEmail,
		ContactPhone:    m.ContactPhone,
		BotAdded:        m.BotAdded,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
