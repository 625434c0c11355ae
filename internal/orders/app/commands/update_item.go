package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// UpdateItemCommand changes the quantity of an existing order line.
type UpdateItemCommand struct {
	OrderID  int64
	ItemID   int64
	Quantity int
}

type UpdateItemCommandHandler struct {
	repo ports.OrderRepository
}

func NewUpdateItemCommandHandler(repo ports.OrderRepository) *UpdateItemCommandHandler {
	return &UpdateItemCommandHandler{repo: repo}
}

func (h *UpdateItemCommandHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.Order, error) {
	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.NewResourceNotFound(domain.ResourceOrder, "id", cmd.OrderID)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	item, err := order.UpdateItem(cmd.ItemID, cmd.Quantity)
	if err != nil {
		return nil, err
	}

	if err := h.repo.UpdateItem(ctx, cmd.ItemID, item); err != nil {
		return nil, fmt.Errorf("persist item update: %w", err)
	}

	updated, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}
	return updated, nil
}
