package queries

import (
	"context"
	"fmt"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// kitchenPriority is the serving order of the worklist: orders closest
// to completion come first, and within a stage the longest-waiting
// order is served first. This is deliberately not one global sort.
var kitchenPriority = []domain.OrderStatus{
	domain.StatusDone,
	domain.StatusPreparing,
	domain.StatusReceived,
}

// KitchenOrdersQueryHandler builds the kitchen worklist: DONE, then
// PREPARING, then RECEIVED, each group ascending by creation time.
type KitchenOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewKitchenOrdersQueryHandler(repo ports.OrderRepository) *KitchenOrdersQueryHandler {
	return &KitchenOrdersQueryHandler{repo: repo}
}

func (h *KitchenOrdersQueryHandler) Handle(ctx context.Context) ([]domain.Order, error) {
	result := []domain.Order{}
	for _, status := range kitchenPriority {
		group, err := h.repo.ListByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("list %s orders: %w", status, err)
		}
		result = append(result, group...)
	}
	return result, nil
}
