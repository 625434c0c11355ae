package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// DeleteItemCommand removes a line from an open order.
type DeleteItemCommand struct {
	OrderID int64
	ItemID  int64
}

type DeleteItemCommandHandler struct {
	repo ports.OrderRepository
}

func NewDeleteItemCommandHandler(repo ports.OrderRepository) *DeleteItemCommandHandler {
	return &DeleteItemCommandHandler{repo: repo}
}

// Handle validates the removal against the in-memory aggregate before
// touching storage, so closed-order and missing-item failures surface
// without a write.
func (h *DeleteItemCommandHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.NewResourceNotFound(domain.ResourceOrder, "id", cmd.OrderID)
		}
		return fmt.Errorf("load order: %w", err)
	}

	if err := order.RemoveItem(cmd.ItemID); err != nil {
		return err
	}

	if err := h.repo.RemoveItem(ctx, cmd.OrderID, cmd.ItemID); err != nil {
		return fmt.Errorf("persist item removal: %w", err)
	}
	return nil
}
