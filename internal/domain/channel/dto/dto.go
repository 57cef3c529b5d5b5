package dto

import "time"

// CreateChannelRequest is the body of POST /api/v1/telegram/channels
type CreateChannelRequest struct {
	ChannelName        string `json:"channelName"`
	ChannelDescription string `json:"channelDescription"`
	TelegramNumber     string `json:"telegramNumber"`
}

// ImportChannelRequest is the body of POST /api/v1/telegram/channels/import
type ImportChannelRequest struct {
	TelegramChannelID  int64  `json:"telegramChannelId"`
	TelegramNumber     string `json:"telegramNumber"`
	ChannelName        string `json:"channelName,omitempty"`
	ChannelDescription string `json:"channelDescription,omitempty"`
}

// UpdateChannelRequest is a partial display-field update
type UpdateChannelRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	RichDescription *string `json:"richDescription,omitempty"`
}

// UpdateContactRequest is a partial contact-field update
type UpdateContactRequest struct {
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

// ChannelResponse is the owner's view of a channel
type ChannelResponse struct {
	ID              uint      `json:"id"`
	RemoteID        int64     `json:"telegramChannelId"`
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	RichDescription string    `json:"richDescription,omitempty"`
	BannerURL       string    `json:"bannerUrl,omitempty"`
	ContactEmail    string    `json:"contactEmail,omitempty"`
	ContactPhone    string    `json:"contactPhone,omitempty"`
	BotAdded        bool      `json:"botAdded"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ProvisionResponse is returned by the create and import endpoints
type ProvisionResponse struct {
	Channel              ChannelResponse `json:"channel"`
	BotAddedSuccessfully bool            `json:"botAddedSuccessfully"`
	Message              string          `json:"message,omitempty"`
	IsExisting           bool            `json:"isExisting,omitempty"`
}

// PublicChannelResponse is the unauthenticated storefront view.
// No account or session fields are ever exposed here.
type PublicChannelResponse struct {
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	RichDescription string `json:"richDescription,omitempty"`
	BannerURL       string `json:"bannerUrl,omitempty"`
	ContactEmail    string `json:"contactEmail,omitempty"`
}
