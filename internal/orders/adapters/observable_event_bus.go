package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/quickbite/orders/internal/kafka"
	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
	"github.com/quickbite/orders/internal/telemetry"
)

// ObservableEventBus wraps an EventBus with spans and producer
// latency metrics.
type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *kafka.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *kafka.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (b *ObservableEventBus) PublishOrderCreated(ctx context.Context, orderID int64) error {
	return b.publish(ctx, "EventBus.PublishOrderCreated", "order.created", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderCreated(ctx, orderID)
	})
}

func (b *ObservableEventBus) PublishOrderCheckedOut(ctx context.Context, orderID int64) error {
	return b.publish(ctx, "EventBus.PublishOrderCheckedOut", "order.checked_out", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderCheckedOut(ctx, orderID)
	})
}

func (b *ObservableEventBus) PublishOrderStatusChanged(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	return b.publish(ctx, "EventBus.PublishOrderStatusChanged", "order.status_changed", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderStatusChanged(ctx, orderID, status)
	})
}

func (b *ObservableEventBus) publish(ctx context.Context, spanName, topic string, orderID int64, fn func(context.Context) error) error {
	ctx, span := telemetry.StartSpan(ctx, spanName)
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.Int64("order.id", orderID))

	start := time.Now()
	err := fn(ctx)
	b.metrics.RecordPublish(ctx, topic, time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
