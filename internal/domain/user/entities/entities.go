package entities

import "time"

// User is a tenant identity. A user owns zero or more Telegram accounts.
type User struct {
	ID        uint
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
