package ports

import (
	"context"

	"github.com/quickbite/orders/internal/orders/domain"
)

// EventBus publishes order lifecycle events for downstream consumers
// (kitchen displays, notification workers). Publishing failures do not
// roll back the originating transaction.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, orderID int64) error
	PublishOrderCheckedOut(ctx context.Context, orderID int64) error
	PublishOrderStatusChanged(ctx context.Context, orderID int64, status domain.OrderStatus) error
}
