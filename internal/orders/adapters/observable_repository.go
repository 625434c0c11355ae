package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/quickbite/orders/internal/database"
	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
	"github.com/quickbite/orders/internal/telemetry"
)

// ObservableRepository wraps an OrderRepository with spans and query
// duration metrics.
type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Create")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.String("operation", "create"))

	start := time.Now()
	created, err := r.repo.Create(ctx, order)
	r.metrics.RecordQuery(ctx, "create_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int64("order.id", created.ID))
	telemetry.SetSpanSuccess(span)
	return created, nil
}

func (r *ObservableRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.GetByID")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", id),
		attribute.String("operation", "get_by_id"),
	)

	start := time.Now()
	order, err := r.repo.GetByID(ctx, id)
	r.metrics.RecordQuery(ctx, "get_order_by_id", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (r *ObservableRepository) List(ctx context.Context) ([]domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.List")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.String("operation", "list"))

	start := time.Now()
	orders, err := r.repo.List(ctx)
	r.metrics.RecordQuery(ctx, "list_orders", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	telemetry.SetSpanSuccess(span)
	return orders, nil
}

func (r *ObservableRepository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.ListByStatus")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "list_by_status"),
		attribute.String("filter.status", string(status)),
	)

	start := time.Now()
	orders, err := r.repo.ListByStatus(ctx, status)
	r.metrics.RecordQuery(ctx, "list_orders_by_status", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	telemetry.SetSpanSuccess(span)
	return orders, nil
}

func (r *ObservableRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Update")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", order.ID),
		attribute.String("order.new_status", string(order.Status)),
		attribute.String("operation", "update"),
	)

	start := time.Now()
	updated, err := r.repo.Update(ctx, order)
	r.metrics.RecordQuery(ctx, "update_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return updated, nil
}

func (r *ObservableRepository) AddItem(ctx context.Context, item *domain.Item) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.AddItem")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", item.OrderID),
		attribute.Int64("product.id", item.ProductID),
		attribute.String("operation", "add_item"),
	)

	start := time.Now()
	err := r.repo.AddItem(ctx, item)
	r.metrics.RecordQuery(ctx, "add_order_item", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) UpdateItem(ctx context.Context, itemID int64, item *domain.Item) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.UpdateItem")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("item.id", itemID),
		attribute.String("operation", "update_item"),
	)

	start := time.Now()
	err := r.repo.UpdateItem(ctx, itemID, item)
	r.metrics.RecordQuery(ctx, "update_order_item", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.RemoveItem")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", orderID),
		attribute.Int64("item.id", itemID),
		attribute.String("operation", "remove_item"),
	)

	start := time.Now()
	err := r.repo.RemoveItem(ctx, orderID, itemID)
	r.metrics.RecordQuery(ctx, "remove_order_item", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
