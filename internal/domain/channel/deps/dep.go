package deps

import (
	"context"

	"github.com/creonhq/creon/internal/domain"
	"github.com/creonhq/creon/internal/domain/channel/entities"
)

// ChannelRepository persists locally mirrored channels
type ChannelRepository interface {
	// Create inserts a new channel row
	Create(ctx context.Context, channel *entities.Channel) (*entities.Channel, error)

	// GetByID returns the user's non-deleted channel, or ErrChannelNotFound
	GetByID(ctx context.Context, userID, channelID uint) (*entities.Channel, error)

	// GetByRemoteID returns the user's channel mirroring the remote ID, if any
	GetByRemoteID(ctx context.Context, userID uint, remoteID int64) (*entities.Channel, error)

	// GetBySlug returns a published channel by its public slug
	GetBySlug(ctx context.Context, slug string) (*entities.Channel, error)

	// ListByUser returns all non-deleted channels of the user
	ListByUser(ctx context.Context, userID uint) ([]entities.Channel, error)

	// Update applies a partial display-field update
	Update(ctx context.Context, userID, channelID uint, update entities.ChannelUpdate) (*entities.Channel, error)

	// UpdateContact applies a partial contact-field update
	UpdateContact(ctx context.Context, userID, channelID uint, update entities.ContactUpdate) (*entities.Channel, error)

	// MarkBotAdded flips botAdded and corrects the stored remote ID to the
	// vendor's canonical value
	MarkBotAdded(ctx context.Context, channelID uint, canonicalRemoteID int64) error

	// SetBanner records the stored banner object key
	SetBanner(ctx context.Context, userID, channelID uint, objectKey string) error

	// SetStatus sets the publish status (ACTIVE or INACTIVE)
	SetStatus(ctx context.Context, userID, channelID uint, status string) error

	// SoftDeleteWithPlans soft-deletes the channel and all of its plans
	// in one transaction
	SoftDeleteWithPlans(ctx context.Context, userID, channelID uint) error
}

// ProvisionedChannel is the outcome of a provisioning operation. BotAdded
// mirrors the persisted flag; Message carries the vendor's rejection reason
// when the bot invitation soft-failed.
type ProvisionedChannel struct {
	Channel    *entities.Channel
	BotAdded   bool
	Message    string
	IsExisting bool
}

// ChannelService orchestrates channel provisioning and management
type ChannelService interface {
	CreateNew(ctx context.Context, userID uint, phoneNumber, name, about string) (*ProvisionedChannel, error)
	ImportExisting(ctx context.Context, userID uint, phoneNumber string, remoteID int64, name, about string) (*ProvisionedChannel, error)
	List(ctx context.Context, userID uint) ([]entities.Channel, error)
	Get(ctx context.Context, userID, channelID uint) (*entities.Channel, error)
	Update(ctx context.Context, userID, channelID uint, update entities.ChannelUpdate) (*entities.Channel, error)
	UpdateContact(ctx context.Context, userID, channelID uint, update entities.ContactUpdate) (*entities.Channel, error)
	UploadBanner(ctx context.Context, userID, channelID uint, contentType string, data []byte) (*entities.Channel, error)
	Publish(ctx context.Context, userID, channelID uint) error
	Unpublish(ctx context.Context, userID, channelID uint) error
	Delete(ctx context.Context, userID, channelID uint) error
	PublicBySlug(ctx context.Context, slug string) (*entities.Channel, error)
	ListDialogs(ctx context.Context, userID uint, phoneNumber string) ([]domain.RemoteChannelSummary, error)
}
