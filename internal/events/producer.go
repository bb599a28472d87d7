package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer publishes order events. Publishing is best-effort: the order
// mutation has already committed by the time an event is emitted, so a
// broker failure is logged, never propagated.
type Producer interface {
	// Publish emits an order event asynchronously.
	Publish(ctx context.Context, event OrderEvent)

	// Close flushes pending records and releases the client.
	Close()
}

// kafkaProducer implements Producer on a franz-go client.
type kafkaProducer struct {
	client *kgo.Client
	topic  string
	logger zerolog.Logger
}

// NewKafkaProducer creates a Kafka-backed order event producer.
func NewKafkaProducer(brokers []string, topic string, logger zerolog.Logger) (Producer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka client: %w", err)
	}

	logger = logger.With().Str("component", "event-producer").Logger()
	logger.Info().
		Strs("brokers", brokers).
		Str("topic", topic).
		Msg("Kafka event producer initialised")

	return &kafkaProducer{
		client: client,
		topic:  topic,
		logger: logger,
	}, nil
}

// Publish emits an order event asynchronously, keyed by order id so all
// events for one order land on the same partition in order.
func (p *kafkaProducer) Publish(ctx context.Context, event OrderEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("event_id", event.EventID).Msg("failed to marshal order event")
		return
	}

	record := &kgo.Record{
		Key:   []byte(event.OrderID.String()),
		Value: value,
	}

	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error().
				Err(err).
				Str("event_id", event.EventID).
				Str("type", event.Type).
				Msg("failed to publish order event")
			return
		}
		p.logger.Debug().
			Str("event_id", event.EventID).
			Str("type", event.Type).
			Str("order_id", event.OrderID.String()).
			Msg("order event published")
	})
}

// Close flushes pending records and releases the client.
func (p *kafkaProducer) Close() {
	if err := p.client.Flush(context.Background()); err != nil {
		p.logger.Error().Err(err).Msg("failed to flush pending events")
	}
	p.client.Close()
}

// noopProducer drops all events. Used when eventing is disabled.
type noopProducer struct{}

// NewNoopProducer creates a producer that discards every event.
func NewNoopProducer() Producer {
	return noopProducer{}
}

func (noopProducer) Publish(ctx context.Context, event OrderEvent) {}

func (noopProducer) Close() {}
