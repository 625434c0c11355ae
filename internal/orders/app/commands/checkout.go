package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// CheckoutCommand moves an order out of the mutable CREATED state and
// requests a payment artifact for it. Checkout only initiates payment;
// settlement is reported later through the payment webhook.
type CheckoutCommand struct {
	OrderID int64
}

type CheckoutCommandHandler struct {
	repo     ports.OrderRepository
	payments ports.PaymentGateway
	events   ports.EventBus
}

func NewCheckoutCommandHandler(
	repo ports.OrderRepository,
	payments ports.PaymentGateway,
	events ports.EventBus,
) *CheckoutCommandHandler {
	return &CheckoutCommandHandler{repo: repo, payments: payments, events: events}
}

// Handle transitions the order to PENDING_PAYMENT, requests a payment
// artifact and persists the new status. The status is committed before
// any payment confirmation arrives.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (string, error) {
	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", domain.NewResourceNotFound(domain.ResourceOrder, "id", cmd.OrderID)
		}
		return "", fmt.Errorf("load order: %w", err)
	}

	if err := order.SetStatus(string(domain.StatusPendingPayment)); err != nil {
		return "", err
	}

	artifact, err := h.payments.RequestPayment(ctx, ports.PaymentRequest{
		OrderID:     order.ID,
		TotalAmount: order.TotalPrice,
		Title:       fmt.Sprintf("Order %s", order.Code),
	})
	if err != nil {
		return "", fmt.Errorf("request payment: %w", err)
	}

	if _, err := h.repo.Update(ctx, order); err != nil {
		return "", fmt.Errorf("persist checkout: %w", err)
	}

	if err := h.events.PublishOrderCheckedOut(ctx, order.ID); err != nil {
		return artifact, fmt.Errorf("order checked out but failed to publish event: %w", err)
	}

	return artifact, nil
}
