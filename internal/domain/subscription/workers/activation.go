package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/creonhq/creon/internal/domain"
	"github.com/creonhq/creon/internal/domain/subscription/deps"
	"github.com/creonhq/creon/internal/domain/subscription/entities"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
)

// ActivationWorker is the periodic sweep that gives queued upgrades their
// missing trigger: it expires lapsed ACTIVE subscriptions and promotes the
// earliest queued subscription per (user, channel) once its predecessor
// lapsed. Without it a queued upgrade would stay EXPIRED forever.
type ActivationWorker struct {
	repo     deps.SubscriptionRepository
	producer domain.EventProducer
	metrics  *metrics.Metrics
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewActivationWorker creates a new activation sweep worker
func NewActivationWorker(
	repo deps.SubscriptionRepository,
	producer domain.EventProducer,
	m *metrics.Metrics,
	interval, timeout time.Duration,
	logger zerolog.Logger,
) *ActivationWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = time.Minute
	}

	return &ActivationWorker{
		repo:     repo,
		producer: producer,
		metrics:  m,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With().Str("component", "activation_worker").Logger(),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop
func (w *ActivationWorker) Start() {
	w.wg.Add(1)
	go w.run()
	w.logger.Info().Dur("interval", w.interval).Msg("activation worker started")
}

// Stop terminates the sweep loop and waits for the in-flight sweep
func (w *ActivationWorker) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.logger.Info().Msg("activation worker stopped")
}

func (w *ActivationWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
			if err := w.Sweep(ctx); err != nil {
				w.logger.Error().Err(err).Msg("activation sweep failed")
			}
			cancel()
		}
	}
}

// Sweep runs one expire-then-promote pass
func (w *ActivationWorker) Sweep(ctx context.Context) error {
	timer := prometheus.NewTimer(w.metrics.ActivationSweepDuration)
	defer timer.ObserveDuration()

	now := time.Now()

	lapsed, err := w.repo.ExpireLapsed(ctx, now)
	if err != nil {
		return fmt.Errorf("expire pass: %w", err)
	}

	for i := range lapsed {
		w.metrics.SubscriptionsExpired.Inc()
		w.publish(ctx, entities.EventSubscriptionExpired, &lapsed[i])
	}

	candidates, err := w.repo.ListPromotable(ctx, now)
	if err != nil {
		return fmt.Errorf("promote pass: %w", err)
	}

	// candidates are ordered by expiry ascending; promote only the first
	// per (user, channel), later queued upgrades wait their turn
	promoted := make(map[string]bool, len(candidates))
	for i := range candidates {
		sub := &candidates[i]
		key := fmt.Sprintf("%d:%d", sub.UserID, sub.ChannelID)
		if promoted[key] {
			continue
		}

		if err := w.repo.Activate(ctx, sub.ID); err != nil {
			w.logger.Error().Err(err).Uint("subscription_id", sub.ID).Msg("failed to promote subscription")
			continue
		}

		promoted[key] = true
		sub.Status = entities.StatusActive
		w.metrics.SubscriptionsPromoted.Inc()
		w.publish(ctx, entities.EventSubscriptionActivated, sub)

		w.logger.Info().
			Uint("subscription_id", sub.ID).
			Uint("user_id", sub.UserID).
			Uint("channel_id", sub.ChannelID).
			Msg("queued subscription promoted")
	}

	if len(lapsed) > 0 || len(promoted) > 0 {
		w.logger.Debug().
			Int("expired", len(lapsed)).
			Int("promoted", len(promoted)).
			Msg("activation sweep completed")
	}

	return nil
}

// publish emits a lifecycle event, best effort
func (w *ActivationWorker) publish(ctx context.Context, eventType string, sub *entities.Subscription) {
	event := entities.SubscriptionEvent{
		Type:           eventType,
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		ChannelID:      sub.ChannelID,
		PlanID:         sub.PlanID,
		PlanName:       sub.PlanName,
		Amount:         sub.PlanPrice,
		ExpiryDate:     sub.ExpiryDate,
		OccurredAt:     time.Now().UTC(),
	}

	key := fmt.Sprintf("%d:%d", sub.UserID, sub.ChannelID)
	if err := w.producer.Publish(ctx, key, event); err != nil {
		w.logger.Warn().Err(err).Str("type", eventType).Msg("failed to publish lifecycle event")
	}
}
