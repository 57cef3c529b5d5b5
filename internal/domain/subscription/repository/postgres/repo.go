package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/creonhq/creon/internal/domain/subscription/deps"
	"github.com/creonhq/creon/internal/domain/subscription/entities"
	suberrors "github.com/creonhq/creon/internal/domain/subscription/errors"
)

// Repository implements deps.SubscriptionRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL subscription repository
func NewRepository(db *gorm.DB) deps.SubscriptionRepository {
	return &Repository{db: db}
}

// Create inserts a new subscription row
func (r *Repository) Create(ctx context.Context, sub *entities.Subscription) (*entities.Subscription, error) {
	model := &entities.SubscriptionModel{
		UserID:           sub.UserID,
		ChannelID:        sub.ChannelID,
		PlanID:           sub.PlanID,
		PlanName:         sub.PlanName,
		PlanPrice:        sub.PlanPrice,
		PlanDurationDays: sub.PlanDurationDays,
		Status:           sub.Status,
		ExpiryDate:       sub.ExpiryDate,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return model.ToEntity(), nil
}

// GetActiveForUserChannel returns the user's live subscription for the channel
func (r *Repository) GetActiveForUserChannel(ctx context.Context, userID, channelID uint, now time.Time) (*entities.Subscription, error) {
	var model entities.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ? AND status = ? AND expiry_date > ?",
			userID, channelID, entities.StatusActive, now).
		Order("expiry_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, suberrors.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	return model.ToEntity(), nil
}

// ListByUser returns all subscriptions of the user, newest first
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]entities.Subscription, error) {
	var models []entities.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	subs := make([]entities.Subscription, len(models))
	for i, model := range models {
		subs[i] = *model.ToEntity()
	}

	return subs, nil
}

// CreateOrder records a completed sale
func (r *Repository) CreateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error) {
	model := &entities.OrderModel{
		UserID:         order.UserID,
		ChannelID:      order.ChannelID,
		PlanID:         order.PlanID,
		SubscriptionID: order.SubscriptionID,
		Amount:         order.Amount,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return model.ToEntity(), nil
}

// ExpireLapsed flips ACTIVE subscriptions whose expiry has passed to EXPIRED
// and returns them
func (r *Repository) ExpireLapsed(ctx context.Context, now time.Time) ([]entities.Subscription, error) {
	var models []entities.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expiry_date <= ?", entities.StatusActive, now).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find lapsed subscriptions: %w", err)
	}

	if len(models) == 0 {
		return nil, nil
	}

	ids := make([]uint, len(models))
	for i, model := range models {
		ids[i] = model.ID
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.SubscriptionModel{}).
		Where("id IN ?", ids).
		Update("status", entities.StatusExpired).Error; err != nil {
		return nil, fmt.Errorf("failed to expire subscriptions: %w", err)
	}

	subs := make([]entities.Subscription, len(models))
	for i, model := range models {
		sub := *model.ToEntity()
		sub.Status = entities.StatusExpired
		subs[i] = sub
	}

	return subs, nil
}

// ListPromotable returns queued subscriptions for (user, channel) pairs with
// no ACTIVE subscription left, ordered by expiry ascending so the earliest
// queued window per pair comes first
func (r *Repository) ListPromotable(ctx context.Context, now time.Time) ([]entities.Subscription, error) {
	live := r.db.
		Table("subscriptions AS live").
		Select("1").
		Where("live.user_id = subscriptions.user_id").
		Where("live.channel_id = subscriptions.channel_id").
		Where("live.status = ?", entities.StatusActive).
		Where("live.expiry_date > ?", now).
		Where("live.deleted_at IS NULL")

	var models []entities.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expiry_date > ?", entities.StatusExpired, now).
		Where("NOT EXISTS (?)", live).
		Order("expiry_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list promotable subscriptions: %w", err)
	}

	subs := make([]entities.Subscription, len(models))
	for i, model := range models {
		subs[i] = *model.ToEntity()
	}

	return subs, nil
}

// Activate flips the subscription to ACTIVE
func (r *Repository) Activate(ctx context.Context, subscriptionID uint) error {
	result := r.db.WithContext(ctx).
		Model(&entities.SubscriptionModel{}).
		Where("id = ?", subscriptionID).
		Update("status", entities.StatusActive)

	if result.Error != nil {
		return fmt.Errorf("failed to activate subscription: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return suberrors.ErrSubscriptionNotFound
	}

	return nil
}
