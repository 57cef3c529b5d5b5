package business

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/creonhq/creon/internal/domain/dashboard/entities"
)

// mockDashboardRepo is a mock implementation of deps.DashboardRepository
type mockDashboardRepo struct {
	lastLimit int
}

func (m *mockDashboardRepo) Summary(ctx context.Context, userID uint) (*entities.Summary, error) {
	return &entities.Summary{TotalRevenue: 19.98, ActiveSubscriptions: 2, ChannelCount: 1, AccountCount: 1}, nil
}

func (m *mockDashboardRepo) RecentSales(ctx context.Context, userID uint, limit int) ([]entities.Sale, error) {
	m.lastLimit = limit
	return nil, nil
}

func TestRecentSales_LimitClamping(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default", limit: 0, wantLimit: defaultSalesLimit},
		{name: "negative", limit: -5, wantLimit: defaultSalesLimit},
		{name: "passthrough", limit: 10, wantLimit: 10},
		{name: "capped", limit: 10000, wantLimit: maxSalesLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockDashboardRepo{}
			uc := &UseCase{repo: repo, logger: zerolog.Nop()}

			if _, err := uc.RecentSales(context.Background(), 1, tt.limit); err != nil {
				t.Fatalf("RecentSales failed: %v", err)
			}
			if repo.lastLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", repo.lastLimit, tt.wantLimit)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	uc := &UseCase{repo: &mockDashboardRepo{}, logger: zerolog.Nop()}

	summary, err := uc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalRevenue != 19.98 || summary.ActiveSubscriptions != 2 {
		t.Errorf("summary = %+v", summary)
	}
}
