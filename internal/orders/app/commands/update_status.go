package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// UpdateOrderStatusCommand moves an order along the fulfillment
// pipeline. Status is the raw string from the caller; unknown values
// are ignored by the aggregate.
type UpdateOrderStatusCommand struct {
	OrderID int64
	Status  string
}

type UpdateOrderStatusCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewUpdateOrderStatusCommandHandler(repo ports.OrderRepository, events ports.EventBus) *UpdateOrderStatusCommandHandler {
	return &UpdateOrderStatusCommandHandler{repo: repo, events: events}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error) {
	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.NewResourceNotFound(domain.ResourceOrder, "id", cmd.OrderID)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	if err := order.SetStatus(cmd.Status); err != nil {
		return nil, err
	}

	updated, err := h.repo.Update(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("persist status change: %w", err)
	}

	if err := h.events.PublishOrderStatusChanged(ctx, updated.ID, updated.Status); err != nil {
		return updated, fmt.Errorf("status changed but failed to publish event: %w", err)
	}

	return updated, nil
}
