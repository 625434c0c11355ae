package ports

import (
	"context"
	"errors"

	"github.com/quickbite/orders/internal/orders/domain"
)

// OrderRepository exposes the persistence operations the application
// layer depends on. It is the sole source of truth for order state:
// the core holds no cross-request locks, so concurrent writers against
// the same order resolve last-write-wins at the storage boundary.
type OrderRepository interface {
	// Create persists a new order and returns it with generated fields
	// (id, creation time) populated.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// GetByID returns ErrNotFound when no order has the given id.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// List returns every order, newest first by creation time.
	List(ctx context.Context) ([]domain.Order, error)
	// ListByStatus returns orders in the given status, ascending by
	// creation time.
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	// Update persists the order's status, payment status and total,
	// returning the stored state.
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// AddItem persists a new item under its order.
	AddItem(ctx context.Context, item *domain.Item) error
	// UpdateItem persists quantity/total changes of an existing item.
	UpdateItem(ctx context.Context, itemID int64, item *domain.Item) error
	// RemoveItem deletes an item from an order.
	RemoveItem(ctx context.Context, orderID, itemID int64) error
}

// ErrNotFound is returned by repository reads when the requested row
// does not exist.
var ErrNotFound = errors.New("not found")
