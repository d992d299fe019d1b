package kafka

import (
	"context"
	"time"

	"github.com/wms-platform/distribution-service/pkg/events"
	"github.com/wms-platform/distribution-service/pkg/logging"
	"github.com/wms-platform/distribution-service/pkg/metrics"
)

// InstrumentedProducer wraps a Producer with metrics and logging
type InstrumentedProducer struct {
	producer *Producer
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewInstrumentedProducer creates a new instrumented producer
func NewInstrumentedProducer(producer *Producer, m *metrics.Metrics, logger *logging.Logger) *InstrumentedProducer {
	return &InstrumentedProducer{
		producer: producer,
		metrics:  m,
		logger:   logger,
	}
}

// PublishEvent publishes an event with metrics and logging
func (p *InstrumentedProducer) PublishEvent(ctx context.Context, topic string, event *events.Event) error {
	start := time.Now()

	err := p.producer.PublishEvent(ctx, topic, event)
	duration := time.Since(start)

	if p.metrics != nil {
		p.metrics.RecordKafkaPublish(topic, event.Type, err == nil, duration)
	}
	if p.logger != nil {
		p.logger.KafkaPublish(ctx, topic, event.Type, err == nil, duration)
		if err != nil {
			p.logger.WithError(err).Error("Failed to publish event",
				"topic", topic,
				"eventType", event.Type,
				"eventId", event.ID,
			)
		}
	}

	return err
}

// PublishEventAsync publishes an event asynchronously with instrumentation
func (p *InstrumentedProducer) PublishEventAsync(ctx context.Context, topic string, event *events.Event, callback func(error)) {
	start := time.Now()

	p.producer.PublishEventAsync(ctx, topic, event, func(err error) {
		duration := time.Since(start)

		if p.metrics != nil {
			p.metrics.RecordKafkaPublish(topic, event.Type, err == nil, duration)
		}
		if p.logger != nil {
			p.logger.KafkaPublish(ctx, topic, event.Type, err == nil, duration)
		}

		if callback != nil {
			callback(err)
		}
	})
}

// PublishBatch publishes multiple events with instrumentation
func (p *InstrumentedProducer) PublishBatch(ctx context.Context, topic string, batch []*events.Event) error {
	start := time.Now()

	err := p.producer.PublishBatch(ctx, topic, batch)
	duration := time.Since(start)

	if p.metrics != nil {
		for _, event := range batch {
			p.metrics.RecordKafkaPublish(topic, event.Type, err == nil, duration)
		}
	}
	if p.logger != nil && err != nil {
		p.logger.WithError(err).Error("Failed to publish batch",
			"topic", topic,
			"events", len(batch),
		)
	}

	return err
}

// Close closes the underlying producer
func (p *InstrumentedProducer) Close() error {
	return p.producer.Close()
}
