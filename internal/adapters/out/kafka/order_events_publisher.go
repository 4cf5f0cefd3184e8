// Package kafka publishes committed order status changes to a Kafka topic so
// systems outside the service can follow the workflow.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"orderflow/internal/core/application/events"
	"orderflow/internal/pkg/tracing"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultPublishTimeout bounds one produce call.
const DefaultPublishTimeout = 5 * time.Second

const headerEventName = "event"

// Producer is the part of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// NewClient creates a producer client for brokers. Topics are created on
// first use when the cluster allows it.
func NewClient(brokers []string, clientID string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	)
}

// OrderEventsPublisher writes one record per status change, keyed by order
// id so a partition keeps the changes of an order in sequence.
type OrderEventsPublisher struct {
	producer Producer
	topic    string
	timeout  time.Duration
	logger   *slog.Logger
}

func NewOrderEventsPublisher(producer Producer, topic string, timeout time.Duration, logger *slog.Logger) *OrderEventsPublisher {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &OrderEventsPublisher{
		producer: producer,
		topic:    topic,
		timeout:  timeout,
		logger:   logger.With("component", "OrderEventsPublisher"),
	}
}

// Publish is an events.Listener.
func (p *OrderEventsPublisher) Publish(ctx context.Context, event events.OrderStatusChanged) error {
	ctx, span := tracing.Tracer().Start(ctx, "Infrastructure Kafka Produce")
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.destination.name", p.topic),
		attribute.String("order.id", event.OrderID.String()),
	)

	value, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal event")
		return err
	}

	record := &kgo.Record{
		Topic:   p.topic,
		Key:     []byte(event.OrderID.String()),
		Value:   value,
		Headers: append(tracing.KafkaHeaders(ctx), kgo.RecordHeader{Key: headerEventName, Value: []byte(events.NameOrderStatusChanged)}),
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err = p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "produce")
		return err
	}

	p.logger.DebugContext(ctx, "order event published",
		"topic", p.topic, "order", event.OrderID.String(), "status", event.NewStatus)
	return nil
}
