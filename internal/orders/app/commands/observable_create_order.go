package commands

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/metrics"
	"github.com/quickbite/orders/internal/telemetry"
)

// ObservableCommandHandler decorates order creation with a span,
// structured logs and business metrics.
type ObservableCommandHandler struct {
	handler CommandHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCommandHandler(handler CommandHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCommandHandler {
	return &ObservableCommandHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *ObservableCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateOrder")
	defer span.End()

	if cmd.CustomerID != nil {
		telemetry.AddSpanAttributes(span, attribute.Int64("customer.id", *cmd.CustomerID))
	} else {
		telemetry.AddSpanAttributes(span, attribute.Bool("customer.anonymous", true))
	}

	start := time.Now()
	order, err := h.handler.Handle(ctx, cmd)
	duration := time.Since(start).Seconds()

	h.metrics.RecordOrderCreated(ctx, err == nil)
	h.metrics.RecordOrderCreationDuration(ctx, duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		h.logger.ErrorContext(ctx, "create order failed", "error", err)
		return order, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", order.ID),
		attribute.String("order.code", order.Code),
	)
	telemetry.SetSpanSuccess(span)
	h.logger.InfoContext(ctx, "order created", "order_id", order.ID, "order_code", order.Code)

	return order, nil
}
