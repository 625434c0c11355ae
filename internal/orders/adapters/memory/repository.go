package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// Repository provides an in-memory order store for local development
// and tests. Identifiers are assigned sequentially the way the
// database would.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]*domain.Order
	nextOrder  int64
	nextItem   int64
	timeSource func() time.Time
}

// NewRepository constructs an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		orders:     make(map[int64]*domain.Order),
		nextOrder:  1,
		nextItem:   1,
		timeSource: time.Now,
	}
}

// WithTimeSource overrides creation timestamps, for tests that need
// deterministic ordering.
func (r *Repository) WithTimeSource(now func() time.Time) *Repository {
	r.timeSource = now
	return r
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneOrder(order)
	stored.ID = r.nextOrder
	r.nextOrder++
	stored.CreatedAt = r.timeSource().UTC()
	for idx := range stored.Items {
		stored.Items[idx].ID = r.nextItem
		stored.Items[idx].OrderID = stored.ID
		r.nextItem++
	}

	r.orders[stored.ID] = stored
	return cloneOrder(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, *cloneOrder(order))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *Repository) ListByStatus(_ context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Order
	for _, order := range r.orders {
		if order.Status == status {
			result = append(result, *cloneOrder(order))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *Repository) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}

	stored.Status = order.Status
	stored.PaymentStatus = order.PaymentStatus
	stored.TotalPrice = order.TotalPrice
	return cloneOrder(stored), nil
}

func (r *Repository) AddItem(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[item.OrderID]
	if !ok {
		return ports.ErrNotFound
	}

	stored := *item
	stored.ID = r.nextItem
	r.nextItem++
	order.Items = append(order.Items, stored)
	order.RecalculateTotal()
	return nil
}

func (r *Repository) UpdateItem(_ context.Context, itemID int64, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		for idx := range order.Items {
			if order.Items[idx].ID != itemID {
				continue
			}
			order.Items[idx].Quantity = item.Quantity
			order.Items[idx].TotalPrice = item.TotalPrice
			order.RecalculateTotal()
			return nil
		}
	}
	return ports.ErrNotFound
}

func (r *Repository) RemoveItem(_ context.Context, orderID, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return ports.ErrNotFound
	}

	for idx := range order.Items {
		if order.Items[idx].ID != itemID {
			continue
		}
		order.Items = append(order.Items[:idx], order.Items[idx+1:]...)
		order.RecalculateTotal()
		return nil
	}
	return ports.ErrNotFound
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.Item, len(order.Items))
	copy(clone.Items, order.Items)
	if order.CustomerID != nil {
		id := *order.CustomerID
		clone.CustomerID = &id
	}
	return &clone
}
