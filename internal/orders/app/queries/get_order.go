package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// GetOrderQuery retrieves one order by its identifier.
type GetOrderQuery struct {
	OrderID int64
}

// GetOrderQueryHandler executes GetOrderQuery.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderQueryHandler constructs a GetOrderQueryHandler.
func NewGetOrderQueryHandler(repo ports.OrderRepository) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{repo: repo}
}

// Handle loads the order or reports it missing.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*domain.Order, error) {
	order, err := h.repo.GetByID(ctx, query.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.NewResourceNotFound(domain.ResourceOrder, "id", query.OrderID)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return order, nil
}
