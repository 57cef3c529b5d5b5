package entities

import (
	"time"

	"gorm.io/gorm"
)

// AccountModel is the GORM model for the accounts table.
// At most one non-deleted row exists per (user_id, phone_number);
// the unique index is partial on deleted_at IS NULL (see migrations).
type AccountModel struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"not null;index"`
	PhoneNumber   string `gorm:"not null"`
	SessionBlob   string `gorm:"type:text"`
	PhoneCodeHash string
	Authenticated bool `gorm:"default:false"`
	Verified      bool `gorm:"default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts the model to a domain entity
func (m *AccountModel) ToEntity() *Account {
	return &Account{
		ID:            m.ID,
		UserID:        m.UserID,
		PhoneNumber:   m.PhoneNumber,
		SessionBlob:   m.SessionBlob,
		PhoneCodeHash: m.PhoneCodeHash,
		Authenticated: m.Authenticated,
		Verified:      m.Verified,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
