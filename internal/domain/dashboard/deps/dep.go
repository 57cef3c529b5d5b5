package deps

import (
	"context"

	"github.com/creonhq/creon/internal/domain/dashboard/entities"
)

// DashboardRepository runs the read-only aggregate queries
type DashboardRepository interface {
	// Summary aggregates revenue and counts over the creator's channels
	Summary(ctx context.Context, userID uint) (*entities.Summary, error)

	// RecentSales lists the newest orders across the creator's channels
	RecentSales(ctx context.Context, userID uint, limit int) ([]entities.Sale, error)
}

// DashboardService serves the creator dashboard reads
type DashboardService interface {
	Summary(ctx context.Context, userID uint) (*entities.Summary, error)
	RecentSales(ctx context.Context, userID uint, limit int) ([]entities.Sale, error)
}
