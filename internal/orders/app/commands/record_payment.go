package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// RecordPaymentCommand applies an asynchronous payment notification.
// The provider only hands us a payment id; details are fetched back
// from the gateway.
type RecordPaymentCommand struct {
	PaymentID int64
}

type RecordPaymentCommandHandler struct {
	repo     ports.OrderRepository
	payments ports.PaymentGateway
	events   ports.EventBus
}

func NewRecordPaymentCommandHandler(
	repo ports.OrderRepository,
	payments ports.PaymentGateway,
	events ports.EventBus,
) *RecordPaymentCommandHandler {
	return &RecordPaymentCommandHandler{repo: repo, payments: payments, events: events}
}

// Handle fetches the payment details, records the reported payment
// status on the linked order and, on approval, advances the order to
// PAYED. Repeated identical notifications are safe: the PAYED
// transition is skipped once the order is at or past that stage.
func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (*domain.Order, error) {
	details, err := h.payments.FetchDetails(ctx, cmd.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("fetch payment details: %w", err)
	}
	if details == nil {
		return nil, domain.NewResourceNotFound(domain.ResourcePayment, "id", cmd.PaymentID)
	}

	order, err := h.repo.GetByID(ctx, details.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, domain.NewResourceNotFound(domain.ResourceOrder, "id", details.OrderID)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	order.SetPaymentStatus(details.Status)

	if order.PaymentStatus == domain.PaymentApproved && !order.Status.Reached(domain.StatusPayed) {
		if err := order.SetStatus(string(domain.StatusPayed)); err != nil {
			return nil, err
		}
	}

	updated, err := h.repo.Update(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("persist payment result: %w", err)
	}

	if err := h.events.PublishOrderStatusChanged(ctx, updated.ID, updated.Status); err != nil {
		return updated, fmt.Errorf("payment recorded but failed to publish event: %w", err)
	}

	return updated, nil
}
