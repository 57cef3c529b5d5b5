package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/creonhq/creon/internal/domain/channel/deps"
	"github.com/creonhq/creon/internal/domain/channel/entities"
	channelerrors "github.com/creonhq/creon/internal/domain/channel/errors"
	planentities "github.com/creonhq/creon/internal/domain/plan/entities"
)

// Repository implements deps.ChannelRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL channel repository
func NewRepository(db *gorm.DB) deps.ChannelRepository {
	return &Repository{db: db}
}

// Create inserts a new channel row
func (r *Repository) Create(ctx context.Context, channel *entities.Channel) (*entities.Channel, error) {
	model := &entities.ChannelModel{
		UserID:          channel.UserID,
		AccountID:       channel.AccountID,
		RemoteID:        channel.RemoteID,
		Slug:            channel.Slug,
		Name:            channel.Name,
		Description:     channel.Description,
		RichDescription: channel.RichDescription,
		BotAdded:        channel.BotAdded,
		Status:          channel.Status,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	return model.ToEntity(), nil
}

// GetByID returns the user's non-deleted channel
func (r *Repository) GetByID(ctx context.Context, userID, channelID uint) (*entities.Channel, error) {
	var model entities.ChannelModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", channelID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, channelerrors.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	return model.ToEntity(), nil
}

// GetByRemoteID returns the user's channel mirroring the remote ID
func (r *Repository) GetByRemoteID(ctx context.Context, userID uint, remoteID int64) (*entities.Channel, error) {
	var model entities.ChannelModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND remote_id = ?", userID, remoteID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, channelerrors.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel by remote ID: %w", err)
	}

	return model.ToEntity(), nil
}

// GetBySlug returns a published channel by its public slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*entities.Channel, error) {
	var model entities.ChannelModel
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, entities.StatusActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, channelerrors.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel by slug: %w", err)
	}

	return model.ToEntity(), nil
}

// ListByUser returns all non-deleted channels of the user
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]entities.Channel, error) {
	var models []entities.ChannelModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	channels := make([]entities.Channel, len(models))
	for i, model := range models {
		channels[i] = *model.ToEntity()
	}

	return channels, nil
}

// Update applies a partial display-field update
func (r *Repository) Update(ctx context.Context, userID, channelID uint, update entities.ChannelUpdate) (*entities.Channel, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.RichDescription != nil {
		updates["rich_description"] = *update.RichDescription
	}

	return r.applyUpdates(ctx, userID, channelID, updates)
}

// UpdateContact applies a partial contact-field update
func (r *Repository) UpdateContact(ctx context.Context, userID, channelID uint, update entities.ContactUpdate) (*entities.Channel, error) {
	updates := map[string]interface{}{}
	if update.ContactEmail != nil {
		updates["contact_email"] = *update.ContactEmail
	}
	if update.ContactPhone != nil {
		updates["contact_phone"] = *update.ContactPhone
	}

	return r.applyUpdates(ctx, userID, channelID, updates)
}

func (r *Repository) applyUpdates(ctx context.Context, userID, channelID uint, updates map[string]interface{}) (*entities.Channel, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&entities.ChannelModel{}).
			Where("id = ? AND user_id = ?", channelID, userID).
			Updates(updates)

		if result.Error != nil {
			return nil, fmt.Errorf("failed to update channel: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return nil, channelerrors.ErrChannelNotFound
		}
	}

	return r.GetByID(ctx, userID, channelID)
}

// MarkBotAdded flips botAdded and corrects the stored remote ID to the
// vendor's canonical value
func (r *Repository) MarkBotAdded(ctx context.Context, channelID uint, canonicalRemoteID int64) error {
	result := r.db.WithContext(ctx).
		Model(&entities.ChannelModel{}).
		Where("id = ?", channelID).
		Updates(map[string]interface{}{
			"bot_added": true,
			"remote_id": canonicalRemoteID,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark bot added: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return channelerrors.ErrChannelNotFound
	}

	return nil
}

// SetBanner records the stored banner object key
func (r *Repository) SetBanner(ctx context.Context, userID, channelID uint, objectKey string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.ChannelModel{}).
		Where("id = ? AND user_id = ?", channelID, userID).
		Update("banner_key", objectKey)

	if result.Error != nil {
		return fmt.Errorf("failed to set banner: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return channelerrors.ErrChannelNotFound
	}

	return nil
}

// SetStatus sets the publish status
func (r *Repository) SetStatus(ctx context.Context, userID, channelID uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.ChannelModel{}).
		Where("id = ? AND user_id = ?", channelID, userID).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("failed to set channel status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return channelerrors.ErrChannelNotFound
	}

	return nil
}

// SoftDeleteWithPlans soft-deletes the channel and all of its plans in one
// transaction. A plan must never stay live under a deleted channel.
func (r *Repository) SoftDeleteWithPlans(ctx context.Context, userID, channelID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("id = ? AND user_id = ?", channelID, userID).
			Delete(&entities.ChannelModel{})

		if result.Error != nil {
			return fmt.Errorf("failed to delete channel: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return channelerrors.ErrChannelNotFound
		}

		if err := tx.
			Model(&planentities.PlanModel{}).
			Where("channel_id = ? AND deleted_at IS NULL", channelID).
			Update("deleted_at", time.Now().UTC()).Error; err != nil {
			return fmt.Errorf("failed to delete channel plans: %w", err)
		}

		return nil
	})
}
