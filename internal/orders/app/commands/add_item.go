package commands

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

// AddItemCommand appends a product line to an open order. Name,
// description and unit price are snapshotted from the catalog at add
// time and never re-synced.
type AddItemCommand struct {
	OrderID   int64
	ProductID int64
	Quantity  int
}

type AddItemCommandHandler struct {
	repo     ports.OrderRepository
	products ports.ProductLookup
}

func NewAddItemCommandHandler(repo ports.OrderRepository, products ports.ProductLookup) *AddItemCommandHandler {
	return &AddItemCommandHandler{repo: repo, products: products}
}

// Handle resolves the product and the order concurrently, applies the
// aggregate mutation, persists the item and re-reads the order so the
// caller observes server-confirmed state.
func (h *AddItemCommandHandler) Handle(ctx context.Context, cmd AddItemCommand) (*domain.Order, error) {
	var (
		product *ports.Product
		order   *domain.Order
	)

	// Absence is captured per lookup and checked after both complete:
	// a missing order must win over a missing product.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		product, err = h.products.FindByID(gctx, cmd.ProductID)
		if err != nil {
			return fmt.Errorf("lookup product: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		loaded, err := h.repo.GetByID(gctx, cmd.OrderID)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("load order: %w", err)
		}
		order = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if order == nil {
		return nil, domain.NewResourceNotFound(domain.ResourceOrder, "id", cmd.OrderID)
	}
	if product == nil {
		return nil, domain.NewResourceNotFound(domain.ResourceProduct, "id", cmd.ProductID)
	}

	item, err := order.AddItem(domain.ItemParams{
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductDescription: product.Description,
		Quantity:           cmd.Quantity,
		UnitPrice:          product.Price,
	})
	if err != nil {
		return nil, err
	}

	if err := h.repo.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("persist item: %w", err)
	}

	updated, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}
	return updated, nil
}
