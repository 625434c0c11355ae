package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// GetPaymentStatusQuery reads the payment outcome of one order.
type GetPaymentStatusQuery struct {
	OrderID int64
}

type GetPaymentStatusQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetPaymentStatusQueryHandler(repo ports.OrderRepository) *GetPaymentStatusQueryHandler {
	return &GetPaymentStatusQueryHandler{repo: repo}
}

func (h *GetPaymentStatusQueryHandler) Handle(ctx context.Context, query GetPaymentStatusQuery) (domain.PaymentStatus, error) {
	order, err := h.repo.GetByID(ctx, query.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", domain.NewResourceNotFound(domain.ResourceOrder, "id", query.OrderID)
		}
		return "", fmt.Errorf("load order: %w", err)
	}
	return order.PaymentStatus, nil
}
