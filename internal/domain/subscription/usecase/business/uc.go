package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/creonhq/creon/internal/domain"
	plandeps "github.com/creonhq/creon/internal/domain/plan/deps"
	planentities "github.com/creonhq/creon/internal/domain/plan/entities"
	planerrors "github.com/creonhq/creon/internal/domain/plan/errors"
	"github.com/creonhq/creon/internal/domain/subscription/deps"
	"github.com/creonhq/creon/internal/domain/subscription/entities"
	suberrors "github.com/creonhq/creon/internal/domain/subscription/errors"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
	apperrors "github.com/creonhq/creon/pkg/errors"
)

// UseCase implements deps.SubscriptionService
type UseCase struct {
	repo     deps.SubscriptionRepository
	plans    plandeps.PlanRepository
	producer domain.EventProducer
	metrics  *metrics.Metrics
	now      func() time.Time
	logger   zerolog.Logger
}

// NewUseCase creates a new subscription usecase
func NewUseCase(
	repo deps.SubscriptionRepository,
	plans plandeps.PlanRepository,
	producer domain.EventProducer,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.SubscriptionService {
	return &UseCase{
		repo:     repo,
		plans:    plans,
		producer: producer,
		metrics:  m,
		now:      time.Now,
		logger:   logger.With().Str("component", "subscription_usecase").Logger(),
	}
}

// Subscribe sells plan access to the user. Plan fields are snapshotted onto
// the subscription. While an active subscription exists for the channel, only
// an upgrade to a strictly higher-priced plan is allowed; the upgrade is
// queued with status EXPIRED and an expiry extending the current window,
// and the activation sweep promotes it once the predecessor lapses.
func (uc *UseCase) Subscribe(ctx context.Context, userID, channelID, planID uint) (*entities.Subscription, error) {
	plan, err := uc.plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, planerrors.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		return nil, err
	}

	if plan.ChannelID != channelID || plan.Status != planentities.StatusActive {
		return nil, apperrors.NewNotFoundError("plan not found")
	}

	now := uc.now()
	duration := time.Duration(plan.DurationDays) * 24 * time.Hour

	existing, err := uc.repo.GetActiveForUserChannel(ctx, userID, channelID, now)
	if err != nil && !errors.Is(err, suberrors.ErrSubscriptionNotFound) {
		return nil, err
	}

	sub := &entities.Subscription{
		UserID:           userID,
		ChannelID:        channelID,
		PlanID:           plan.ID,
		PlanName:         plan.Name,
		PlanPrice:        plan.Price,
		PlanDurationDays: plan.DurationDays,
	}

	kind := "new"
	eventType := entities.EventSubscriptionCreated

	if existing == nil {
		sub.Status = entities.StatusActive
		sub.ExpiryDate = now.Add(duration)
	} else {
		if plan.Price <= existing.PlanPrice {
			return nil, apperrors.NewValidationError("an active subscription exists, only an upgrade to a higher-priced plan is allowed")
		}
		// Queued: goes live when the current window lapses
		sub.Status = entities.StatusExpired
		sub.ExpiryDate = existing.ExpiryDate.Add(duration)
		kind = "upgrade"
		eventType = entities.EventSubscriptionQueued
	}

	created, err := uc.repo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.CreateOrder(ctx, &entities.Order{
		UserID:         userID,
		ChannelID:      channelID,
		PlanID:         plan.ID,
		SubscriptionID: created.ID,
		Amount:         plan.Price,
	}); err != nil {
		uc.logger.Error().Err(err).Uint("subscription_id", created.ID).Msg("failed to record order")
	}

	uc.metrics.RecordSubscription(kind)
	uc.publish(ctx, eventType, created)

	uc.logger.Info().
		Uint("user_id", userID).
		Uint("channel_id", channelID).
		Uint("subscription_id", created.ID).
		Str("kind", kind).
		Msg("subscription created")

	return created, nil
}

// ListByUser returns all subscriptions of the user
func (uc *UseCase) ListByUser(ctx context.Context, userID uint) ([]entities.Subscription, error) {
	return uc.repo.ListByUser(ctx, userID)
}

// publish emits a sales event, best effort
func (uc *UseCase) publish(ctx context.Context, eventType string, sub *entities.Subscription) {
	event := entities.SubscriptionEvent{
		Type:           eventType,
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		ChannelID:      sub.ChannelID,
		PlanID:         sub.PlanID,
		PlanName:       sub.PlanName,
		Amount:         sub.PlanPrice,
		ExpiryDate:     sub.ExpiryDate,
		OccurredAt:     uc.now().UTC(),
	}

	key := fmt.Sprintf("%d:%d", sub.UserID, sub.ChannelID)
	if err := uc.producer.Publish(ctx, key, event); err != nil {
		uc.logger.Warn().Err(err).Str("type", eventType).Msg("failed to publish sales event")
	}
}
