package deps

import (
	"context"
	"time"

	"github.com/creonhq/creon/internal/domain/subscription/entities"
)

// SubscriptionRepository persists subscriptions and orders
type SubscriptionRepository interface {
	// Create inserts a new subscription row
	Create(ctx context.Context, sub *entities.Subscription) (*entities.Subscription, error)

	// GetActiveForUserChannel returns the user's live subscription for the
	// channel: status ACTIVE with an expiry in the future
	GetActiveForUserChannel(ctx context.Context, userID, channelID uint, now time.Time) (*entities.Subscription, error)

	// ListByUser returns all subscriptions of the user, newest first
	ListByUser(ctx context.Context, userID uint) ([]entities.Subscription, error)

	// CreateOrder records a completed sale
	CreateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error)

	// ExpireLapsed flips ACTIVE subscriptions whose expiry has passed to
	// EXPIRED and returns them
	ExpireLapsed(ctx context.Context, now time.Time) ([]entities.Subscription, error)

	// ListPromotable returns queued subscriptions (EXPIRED with a future
	// expiry) for (user, channel) pairs that currently have no ACTIVE
	// subscription, ordered by expiry ascending
	ListPromotable(ctx context.Context, now time.Time) ([]entities.Subscription, error)

	// Activate flips the subscription to ACTIVE
	Activate(ctx context.Context, subscriptionID uint) error
}

// SubscriptionService sells plan access and lists the user's subscriptions
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, channelID, planID uint) (*entities.Subscription, error)
	ListByUser(ctx context.Context, userID uint) ([]entities.Subscription, error)
}
