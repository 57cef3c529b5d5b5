package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/creonhq/creon/internal/domain/dashboard/deps"
	"github.com/creonhq/creon/internal/domain/dashboard/entities"
)

// Repository implements deps.DashboardRepository using PostgreSQL.
// All aggregates are computed from the creator's perspective: revenue and
// subscriptions are counted over channels the user owns, not purchases the
// user made.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL dashboard repository
func NewRepository(db *gorm.DB) deps.DashboardRepository {
	return &Repository{db: db}
}

// Summary aggregates revenue and counts over the creator's channels
func (r *Repository) Summary(ctx context.Context, userID uint) (*entities.Summary, error) {
	summary := &entities.Summary{}

	if err := r.db.WithContext(ctx).
		Table("orders").
		Joins("JOIN channels ON channels.id = orders.channel_id").
		Where("channels.user_id = ?", userID).
		Select("COALESCE(SUM(orders.amount), 0)").
		Scan(&summary.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Table("subscriptions").
		Joins("JOIN channels ON channels.id = subscriptions.channel_id").
		Where("channels.user_id = ?", userID).
		Where("subscriptions.status = ? AND subscriptions.expiry_date > ?", "ACTIVE", time.Now()).
		Where("subscriptions.deleted_at IS NULL").
		Count(&summary.ActiveSubscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Table("channels").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Count(&summary.ChannelCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count channels: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Table("accounts").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Count(&summary.AccountCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}

	return summary, nil
}

// RecentSales lists the newest orders across the creator's channels
func (r *Repository) RecentSales(ctx context.Context, userID uint, limit int) ([]entities.Sale, error) {
	type saleRow struct {
		OrderID     uint
		ChannelID   uint
		ChannelName string
		PlanName    string
		Amount      float64
		CreatedAt   time.Time
	}

	var rows []saleRow
	if err := r.db.WithContext(ctx).
		Table("orders").
		Joins("JOIN channels ON channels.id = orders.channel_id").
		Joins("JOIN subscriptions ON subscriptions.id = orders.subscription_id").
		Where("channels.user_id = ?", userID).
		Select("orders.id AS order_id, orders.channel_id, channels.name AS channel_name, subscriptions.plan_name, orders.amount, orders.created_at").
		Order("orders.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent sales: %w", err)
	}

	sales := make([]entities.Sale, len(rows))
	for i, row := range rows {
		sales[i] = entities.Sale{
			OrderID:     row.OrderID,
			ChannelID:   row.ChannelID,
			ChannelName: row.ChannelName,
			PlanName:    row.PlanName,
			Amount:      row.Amount,
			CreatedAt:   row.CreatedAt,
		}
	}

	return sales, nil
}
