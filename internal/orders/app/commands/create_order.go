package commands

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// CodeSource produces the short human-facing order code. The default
// mirrors the kiosk displays: a random 4-digit number. Uniqueness is
// not enforced; collisions are possible and accepted for display codes.
type CodeSource func() string

// RandomCode returns a random code between 1000 and 9999.
func RandomCode() string {
	return strconv.Itoa(1000 + rand.IntN(9000))
}

// CreateOrderCommand opens a new order. A nil CustomerID denotes an
// anonymous walk-in order.
type CreateOrderCommand struct {
	CustomerID *int64
}

// CommandHandler is the contract the observable decorator wraps.
type CommandHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

type CreateOrderCommandHandler struct {
	repo      ports.OrderRepository
	customers ports.CustomerLookup
	events    ports.EventBus
	code      CodeSource
}

func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	customers ports.CustomerLookup,
	events ports.EventBus,
	code CodeSource,
) *CreateOrderCommandHandler {
	if code == nil {
		code = RandomCode
	}
	return &CreateOrderCommandHandler{
		repo:      repo,
		customers: customers,
		events:    events,
		code:      code,
	}
}

// Handle resolves the customer when one is referenced, persists a new
// CREATED order and returns the stored state with generated fields.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.CustomerID != nil {
		customer, err := h.customers.FindByID(ctx, *cmd.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("lookup customer: %w", err)
		}
		if customer == nil {
			return nil, domain.NewResourceNotFound(domain.ResourceCustomer, "id", *cmd.CustomerID)
		}
	}

	order := domain.NewOrder(h.code(), cmd.CustomerID)

	created, err := h.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := h.events.PublishOrderCreated(ctx, created.ID); err != nil {
		return created, fmt.Errorf("order saved but failed to publish event: %w", err)
	}

	return created, nil
}
