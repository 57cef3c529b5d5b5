package deps

import (
	"context"

	"github.com/creonhq/creon/internal/domain/plan/entities"
)

// PlanRepository persists subscription plans
type PlanRepository interface {
	Create(ctx context.Context, plan *entities.Plan) (*entities.Plan, error)
	GetByID(ctx context.Context, planID uint) (*entities.Plan, error)
	ListActiveByChannel(ctx context.Context, channelID uint) ([]entities.Plan, error)
	Update(ctx context.Context, planID uint, update entities.PlanUpdate) (*entities.Plan, error)
	Deactivate(ctx context.Context, planID uint) error
}

// PlanService manages plans scoped to an owned channel
type PlanService interface {
	Create(ctx context.Context, userID, channelID uint, name string, price float64, durationDays int) (*entities.Plan, error)
	ListByChannel(ctx context.Context, userID, channelID uint) ([]entities.Plan, error)
	Update(ctx context.Context, userID, planID uint, update entities.PlanUpdate) (*entities.Plan, error)
	Delete(ctx context.Context, userID, planID uint) error
}
