package business

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	channeldeps "github.com/creonhq/creon/internal/domain/channel/deps"
	channelerrors "github.com/creonhq/creon/internal/domain/channel/errors"
	"github.com/creonhq/creon/internal/domain/plan/deps"
	"github.com/creonhq/creon/internal/domain/plan/entities"
	planerrors "github.com/creonhq/creon/internal/domain/plan/errors"
	apperrors "github.com/creonhq/creon/pkg/errors"
)

// UseCase implements deps.PlanService. Every operation verifies channel
// ownership before touching plan rows.
type UseCase struct {
	repo     deps.PlanRepository
	channels channeldeps.ChannelRepository
	logger   zerolog.Logger
}

// NewUseCase creates a new plan usecase
func NewUseCase(repo deps.PlanRepository, channels channeldeps.ChannelRepository, logger zerolog.Logger) deps.PlanService {
	return &UseCase{
		repo:     repo,
		channels: channels,
		logger:   logger.With().Str("component", "plan_usecase").Logger(),
	}
}

// Create adds a plan to an owned channel
func (uc *UseCase) Create(ctx context.Context, userID, channelID uint, name string, price float64, durationDays int) (*entities.Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if price <= 0 {
		return nil, apperrors.NewValidationError("price must be greater than zero")
	}
	if durationDays <= 0 {
		return nil, apperrors.NewValidationError("durationDays must be greater than zero")
	}

	if err := uc.requireOwnedChannel(ctx, userID, channelID); err != nil {
		return nil, err
	}

	plan, err := uc.repo.Create(ctx, &entities.Plan{
		ChannelID:    channelID,
		Name:         name,
		Price:        price,
		DurationDays: durationDays,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().Uint("channel_id", channelID).Uint("plan_id", plan.ID).Msg("plan created")
	return plan, nil
}

// ListByChannel returns the active plans of an owned channel
func (uc *UseCase) ListByChannel(ctx context.Context, userID, channelID uint) ([]entities.Plan, error) {
	if err := uc.requireOwnedChannel(ctx, userID, channelID); err != nil {
		return nil, err
	}

	return uc.repo.ListActiveByChannel(ctx, channelID)
}

// Update applies a partial update to an owned plan
func (uc *UseCase) Update(ctx context.Context, userID, planID uint, update entities.PlanUpdate) (*entities.Plan, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}
	if update.Price != nil && *update.Price <= 0 {
		return nil, apperrors.NewValidationError("price must be greater than zero")
	}
	if update.DurationDays != nil && *update.DurationDays <= 0 {
		return nil, apperrors.NewValidationError("durationDays must be greater than zero")
	}
	if update.Status != nil && *update.Status != entities.StatusActive && *update.Status != entities.StatusInactive {
		return nil, apperrors.NewValidationError("status must be ACTIVE or INACTIVE")
	}

	if err := uc.requireOwnedPlan(ctx, userID, planID); err != nil {
		return nil, err
	}

	plan, err := uc.repo.Update(ctx, planID, update)
	if err != nil {
		if errors.Is(err, planerrors.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		return nil, err
	}

	return plan, nil
}

// Delete retires an owned plan by flipping its status to INACTIVE
func (uc *UseCase) Delete(ctx context.Context, userID, planID uint) error {
	if err := uc.requireOwnedPlan(ctx, userID, planID); err != nil {
		return err
	}

	if err := uc.repo.Deactivate(ctx, planID); err != nil {
		if errors.Is(err, planerrors.ErrPlanNotFound) {
			return apperrors.NewNotFoundError("plan not found")
		}
		return err
	}

	uc.logger.Info().Uint("user_id", userID).Uint("plan_id", planID).Msg("plan retired")
	return nil
}

// requireOwnedChannel verifies the channel exists and belongs to the user
func (uc *UseCase) requireOwnedChannel(ctx context.Context, userID, channelID uint) error {
	_, err := uc.channels.GetByID(ctx, userID, channelID)
	if err != nil {
		if errors.Is(err, channelerrors.ErrChannelNotFound) {
			return apperrors.NewNotFoundError("channel not found")
		}
		return err
	}
	return nil
}

// requireOwnedPlan verifies the plan's channel belongs to the user
func (uc *UseCase) requireOwnedPlan(ctx context.Context, userID, planID uint) error {
	plan, err := uc.repo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, planerrors.ErrPlanNotFound) {
			return apperrors.NewNotFoundError("plan not found")
		}
		return err
	}

	return uc.requireOwnedChannel(ctx, userID, plan.ChannelID)
}
