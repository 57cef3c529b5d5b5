package business

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/creonhq/creon/internal/domain/dashboard/deps"
	"github.com/creonhq/creon/internal/domain/dashboard/entities"
)

const (
	defaultSalesLimit = 50
	maxSalesLimit     = 200
)

// UseCase implements deps.DashboardService
type UseCase struct {
	repo   deps.DashboardRepository
	logger zerolog.Logger
}

// NewUseCase creates a new dashboard usecase
func NewUseCase(repo deps.DashboardRepository, logger zerolog.Logger) deps.DashboardService {
	return &UseCase{
		repo:   repo,
		logger: logger.With().Str("component", "dashboard_usecase").Logger(),
	}
}

// Summary returns the creator's headline numbers
func (uc *UseCase) Summary(ctx context.Context, userID uint) (*entities.Summary, error) {
	return uc.repo.Summary(ctx, userID)
}

// RecentSales returns the creator's newest sales
func (uc *UseCase) RecentSales(ctx context.Context, userID uint, limit int) ([]entities.Sale, error) {
	if limit <= 0 {
		limit = defaultSalesLimit
	}
	if limit > maxSalesLimit {
		limit = maxSalesLimit
	}

	return uc.repo.RecentSales(ctx, userID, limit)
}
