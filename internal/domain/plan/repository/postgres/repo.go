package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/creonhq/creon/internal/domain/plan/deps"
	"github.com/creonhq/creon/internal/domain/plan/entities"
	planerrors "github.com/creonhq/creon/internal/domain/plan/errors"
)

// Repository implements deps.PlanRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL plan repository
func NewRepository(db *gorm.DB) deps.PlanRepository {
	return &Repository{db: db}
}

// Create inserts a new plan row
func (r *Repository) Create(ctx context.Context, plan *entities.Plan) (*entities.Plan, error) {
	model := &entities.PlanModel{
		ChannelID:    plan.ChannelID,
		Name:         plan.Name,
		Price:        plan.Price,
		DurationDays: plan.DurationDays,
		Status:       entities.StatusActive,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return model.ToEntity(), nil
}

// GetByID returns the non-deleted plan with the given ID
func (r *Repository) GetByID(ctx context.Context, planID uint) (*entities.Plan, error) {
	var model entities.PlanModel
	if err := r.db.WithContext(ctx).First(&model, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, planerrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return model.ToEntity(), nil
}

// ListActiveByChannel returns the channel's active plans
func (r *Repository) ListActiveByChannel(ctx context.Context, channelID uint) ([]entities.Plan, error) {
	var models []entities.PlanModel
	if err := r.db.WithContext(ctx).
		Where("channel_id = ? AND status = ?", channelID, entities.StatusActive).
		Order("price ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]entities.Plan, len(models))
	for i, model := range models {
		plans[i] = *model.ToEntity()
	}

	return plans, nil
}

// Update applies a partial update. Existing subscriptions are unaffected:
// they carry their own snapshot of name, price and duration.
func (r *Repository) Update(ctx context.Context, planID uint, update entities.PlanUpdate) (*entities.Plan, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Price != nil {
		updates["price"] = *update.Price
	}
	if update.DurationDays != nil {
		updates["duration_days"] = *update.DurationDays
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&entities.PlanModel{}).
			Where("id = ?", planID).
			Updates(updates)

		if result.Error != nil {
			return nil, fmt.Errorf("failed to update plan: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return nil, planerrors.ErrPlanNotFound
		}
	}

	return r.GetByID(ctx, planID)
}

// Deactivate retires the plan by flipping its status. The row stays in place
// so historical subscriptions keep a valid reference.
func (r *Repository) Deactivate(ctx context.Context, planID uint) error {
	result := r.db.WithContext(ctx).
		Model(&entities.PlanModel{}).
		Where("id = ?", planID).
		Update("status", entities.StatusInactive)

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate plan: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return planerrors.ErrPlanNotFound
	}

	return nil
}
