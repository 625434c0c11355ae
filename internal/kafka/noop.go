package kafka

import (
	"context"
	"log/slog"

	"github.com/quickbite/orders/internal/orders/domain"
)

// NoopEventBus logs events without sending them to Kafka. Used when no
// brokers are configured.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderCreated(_ context.Context, orderID int64) error {
	slog.Debug("event::order_created", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderCheckedOut(_ context.Context, orderID int64) error {
	slog.Debug("event::order_checked_out", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderStatusChanged(_ context.Context, orderID int64, status domain.OrderStatus) error {
	slog.Debug("event::order_status_changed", "order_id", orderID, "status", status)
	return nil
}
