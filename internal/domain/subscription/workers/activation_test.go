package workers

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/creonhq/creon/internal/domain/subscription/entities"
	"github.com/creonhq/creon/internal/infrastructure/kafka"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
)

// mockSweepRepo is a mock implementation of deps.SubscriptionRepository
type mockSweepRepo struct {
	lapsed     []entities.Subscription
	promotable []entities.Subscription

	activated []uint
}

func (m *mockSweepRepo) Create(ctx context.Context, sub *entities.Subscription) (*entities.Subscription, error) {
	return sub, nil
}

func (m *mockSweepRepo) GetActiveForUserChannel(ctx context.Context, userID, channelID uint, now time.Time) (*entities.Subscription, error) {
	return nil, nil
}

func (m *mockSweepRepo) ListByUser(ctx context.Context, userID uint) ([]entities.Subscription, error) {
	return nil, nil
}

func (m *mockSweepRepo) CreateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error) {
	return order, nil
}

func (m *mockSweepRepo) ExpireLapsed(ctx context.Context, now time.Time) ([]entities.Subscription, error) {
	return m.lapsed, nil
}

func (m *mockSweepRepo) ListPromotable(ctx context.Context, now time.Time) ([]entities.Subscription, error) {
	return m.promotable, nil
}

func (m *mockSweepRepo) Activate(ctx context.Context, subscriptionID uint) error {
	m.activated = append(m.activated, subscriptionID)
	return nil
}

func newTestWorker(repo *mockSweepRepo) *ActivationWorker {
	return NewActivationWorker(repo, kafka.NoopProducer{}, metrics.GetDefaultMetrics(), time.Minute, time.Minute, zerolog.Nop())
}

func TestSweep_PromotesEarliestPerPair(t *testing.T) {
	now := time.Now()
	repo := &mockSweepRepo{
		// ordered by expiry ascending, as the repository guarantees
		promotable: []entities.Subscription{
			{ID: 21, UserID: 1, ChannelID: 2, Status: entities.StatusExpired, ExpiryDate: now.Add(24 * time.Hour)},
			{ID: 22, UserID: 1, ChannelID: 2, Status: entities.StatusExpired, ExpiryDate: now.Add(48 * time.Hour)},
			{ID: 31, UserID: 3, ChannelID: 4, Status: entities.StatusExpired, ExpiryDate: now.Add(24 * time.Hour)},
		},
	}

	worker := newTestWorker(repo)

	if err := worker.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if len(repo.activated) != 2 {
		t.Fatalf("activated %v, want exactly one promotion per (user, channel)", repo.activated)
	}
	if repo.activated[0] != 21 || repo.activated[1] != 31 {
		t.Errorf("activated %v, want [21 31]", repo.activated)
	}
}

func TestSweep_ExpiresBeforePromoting(t *testing.T) {
	now := time.Now()
	repo := &mockSweepRepo{
		lapsed: []entities.Subscription{
			{ID: 1, UserID: 1, ChannelID: 2, Status: entities.StatusExpired, ExpiryDate: now.Add(-time.Hour)},
		},
		promotable: []entities.Subscription{
			{ID: 2, UserID: 1, ChannelID: 2, Status: entities.StatusExpired, ExpiryDate: now.Add(24 * time.Hour)},
		},
	}

	worker := newTestWorker(repo)

	if err := worker.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if len(repo.activated) != 1 || repo.activated[0] != 2 {
		t.Errorf("activated %v, want the queued successor", repo.activated)
	}
}

func TestSweep_NothingToDo(t *testing.T) {
	repo := &mockSweepRepo{}
	worker := newTestWorker(repo)

	if err := worker.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if len(repo.activated) != 0 {
		t.Errorf("activated %v, want none", repo.activated)
	}
}

func TestStartStop(t *testing.T) {
	worker := newTestWorker(&mockSweepRepo{})

	worker.Start()
	worker.Stop()
}
