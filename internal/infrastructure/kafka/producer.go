package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/creonhq/creon/internal/domain"
	"github.com/rs/zerolog"
)

// Producer publishes sales events to Kafka using a sarama SyncProducer
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   zerolog.Logger
}

// NewProducer creates a Kafka sync producer
func NewProducer(brokers []string, topic string, logger zerolog.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 10 * time.Second
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create Kafka SyncProducer")
		return nil, err
	}

	logger.Info().Str("topic", topic).Msg("Kafka SyncProducer initialized")

	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   logger.With().Str("component", "kafka_producer").Logger(),
	}, nil
}

// Publish sends an event to the sales topic
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	bytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("key", key).Msg("failed to marshal event")
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(bytes),
	}

	start := time.Now()
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("key", key).
			Dur("latency", time.Since(start)).
			Msg("failed to send event to kafka")
		return err
	}

	p.logger.Debug().
		Str("key", key).
		Int32("partition", partition).
		Int64("offset", offset).
		Dur("latency", time.Since(start)).
		Msg("event sent to kafka")

	return nil
}

// Close shuts down the producer, flushing pending messages
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

// NoopProducer is used when no brokers are configured
type NoopProducer struct{}

func (NoopProducer) Publish(ctx context.Context, key string, event any) error { return nil }
func (NoopProducer) Close() error                                             { return nil }

var (
	_ domain.EventProducer = (*Producer)(nil)
	_ domain.EventProducer = NoopProducer{}
)
