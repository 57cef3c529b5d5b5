package kafka

import (
	"context"

	"github.com/creonhq/creon/config"
	"github.com/creonhq/creon/internal/domain"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module provides the sales event producer for fx DI
var Module = fx.Module("kafka",
	fx.Provide(NewEventProducerFx),
)

// NewEventProducerFx creates the event producer with fx lifecycle management.
// Without configured brokers a no-op producer is provided.
func NewEventProducerFx(
	lc fx.Lifecycle,
	cfg *config.KafkaConfig,
	logger zerolog.Logger,
) (domain.EventProducer, error) {
	if !cfg.Enabled() {
		logger.Info().Msg("Kafka brokers not configured, sales events disabled")
		return NoopProducer{}, nil
	}

	producer, err := NewProducer(cfg.Brokers, cfg.Topic, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Closing Kafka producer")
			return producer.Close()
		},
	})

	return producer, nil
}
