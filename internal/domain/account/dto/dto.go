package dto

import "time"

// SendOTPRequest is the body of POST /api/v1/telegram/send-otp
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// SendOTPResponse acknowledges a dispatched verification code
type SendOTPResponse struct {
	UserID uint `json:"userId"`
}

// VerifyOTPRequest is the body of POST /api/v1/telegram/verify-otp
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

// VerifyOTPResponse reports the outcome of a verification attempt
type VerifyOTPResponse struct {
	UserID        uint `json:"userId"`
	Authenticated bool `json:"authenticated"`
}

// AccountResponse is the public view of a linked account.
// Session credentials are never exposed.
type AccountResponse struct {
	ID            uint      `json:"id"`
	PhoneNumber   string    `json:"phoneNumber"`
	Authenticated bool      `json:"authenticated"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"createdAt"`
}
