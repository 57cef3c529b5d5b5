package workers

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/creonhq/creon/config"
	"github.com/creonhq/creon/internal/domain"
	"github.com/creonhq/creon/internal/domain/subscription/deps"
	"github.com/creonhq/creon/internal/infrastructure/metrics"
)

// Module provides the activation sweep worker for fx DI
var Module = fx.Module("subscription_workers",
	fx.Provide(NewActivationWorkerFx),
	fx.Invoke(func(*ActivationWorker) {}),
)

// NewActivationWorkerFx creates the activation worker with lifecycle hooks
func NewActivationWorkerFx(
	lc fx.Lifecycle,
	repo deps.SubscriptionRepository,
	producer domain.EventProducer,
	m *metrics.Metrics,
	cfg *config.WorkerConfig,
	logger zerolog.Logger,
) *ActivationWorker {
	worker := NewActivationWorker(repo, producer, m, cfg.ActivationInterval, cfg.ActivationTimeout, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			worker.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			worker.Stop()
			return nil
		},
	})

	return worker
}
