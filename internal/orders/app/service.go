package app

import (
	"context"
	"log/slog"

	"github.com/quickbite/orders/internal/orders/app/commands"
	"github.com/quickbite/orders/internal/orders/app/queries"
	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/metrics"
	"github.com/quickbite/orders/internal/orders/ports"
)

// Service bundles the order use cases for the API layer. Handlers are
// stateless; every call re-reads order state from the repository.
type Service struct {
	createOrder   commands.CommandHandler
	addItem       *commands.AddItemCommandHandler
	updateItem    *commands.UpdateItemCommandHandler
	deleteItem    *commands.DeleteItemCommandHandler
	checkout      *commands.CheckoutCommandHandler
	recordPayment *commands.RecordPaymentCommandHandler
	updateStatus  *commands.UpdateOrderStatusCommandHandler

	getOrder      *queries.GetOrderQueryHandler
	listOrders    *queries.ListOrdersQueryHandler
	kitchenOrders *queries.KitchenOrdersQueryHandler
	paymentStatus *queries.GetPaymentStatusQueryHandler

	notifications ports.NotificationStore
	metrics       *metrics.Metrics
}

// NewService wires the use-case handlers with their ports.
func NewService(
	repo ports.OrderRepository,
	customers ports.CustomerLookup,
	products ports.ProductLookup,
	payments ports.PaymentGateway,
	events ports.EventBus,
	notifications ports.NotificationStore,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	createHandler := commands.NewCreateOrderCommandHandler(repo, customers, events, nil)

	return &Service{
		createOrder:   commands.NewObservableCommandHandler(createHandler, logger, m),
		addItem:       commands.NewAddItemCommandHandler(repo, products),
		updateItem:    commands.NewUpdateItemCommandHandler(repo),
		deleteItem:    commands.NewDeleteItemCommandHandler(repo),
		checkout:      commands.NewCheckoutCommandHandler(repo, payments, events),
		recordPayment: commands.NewRecordPaymentCommandHandler(repo, payments, events),
		updateStatus:  commands.NewUpdateOrderStatusCommandHandler(repo, events),
		getOrder:      queries.NewGetOrderQueryHandler(repo),
		listOrders:    queries.NewListOrdersQueryHandler(repo),
		kitchenOrders: queries.NewKitchenOrdersQueryHandler(repo),
		paymentStatus: queries.NewGetPaymentStatusQueryHandler(repo),
		notifications: notifications,
		metrics:       m,
	}
}

// CreateOrder opens a new order, optionally bound to a customer.
func (s *Service) CreateOrder(ctx context.Context, customerID *int64) (*domain.Order, error) {
	return s.createOrder.Handle(ctx, commands.CreateOrderCommand{CustomerID: customerID})
}

// GetOrder retrieves an order by id.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.getOrder.Handle(ctx, queries.GetOrderQuery{OrderID: orderID})
}

// GetOrdersAll returns every order, newest first.
func (s *Service) GetOrdersAll(ctx context.Context) ([]domain.Order, error) {
	return s.listOrders.Handle(ctx)
}

// GetOrders returns the kitchen worklist.
func (s *Service) GetOrders(ctx context.Context) ([]domain.Order, error) {
	return s.kitchenOrders.Handle(ctx)
}

// GetPaymentStatus returns the payment outcome of an order.
func (s *Service) GetPaymentStatus(ctx context.Context, orderID int64) (domain.PaymentStatus, error) {
	return s.paymentStatus.Handle(ctx, queries.GetPaymentStatusQuery{OrderID: orderID})
}

// AddItem appends a product line to an order.
func (s *Service) AddItem(ctx context.Context, orderID, productID int64, quantity int) (*domain.Order, error) {
	return s.addItem.Handle(ctx, commands.AddItemCommand{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateItem changes the quantity of an order line.
func (s *Service) UpdateItem(ctx context.Context, orderID, itemID int64, quantity int) (*domain.Order, error) {
	return s.updateItem.Handle(ctx, commands.UpdateItemCommand{
		OrderID:  orderID,
		ItemID:   itemID,
		Quantity: quantity,
	})
}

// DeleteItem removes an order line.
func (s *Service) DeleteItem(ctx context.Context, orderID, itemID int64) error {
	return s.deleteItem.Handle(ctx, commands.DeleteItemCommand{OrderID: orderID, ItemID: itemID})
}

// Checkout initiates payment for an order and returns the payment
// artifact.
func (s *Service) Checkout(ctx context.Context, orderID int64) (string, error) {
	artifact, err := s.checkout.Handle(ctx, commands.CheckoutCommand{OrderID: orderID})
	s.metrics.RecordCheckout(ctx, err == nil)
	return artifact, err
}

// RecordPaymentResult applies an asynchronous payment notification.
func (s *Service) RecordPaymentResult(ctx context.Context, paymentID int64) (*domain.Order, error) {
	order, err := s.recordPayment.Handle(ctx, commands.RecordPaymentCommand{PaymentID: paymentID})
	outcome := "error"
	if err == nil {
		outcome = string(order.PaymentStatus)
	}
	s.metrics.RecordPaymentNotification(ctx, outcome)
	return order, err
}

// UpdateOrderStatus moves an order along the fulfillment pipeline.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*domain.Order, error) {
	return s.updateStatus.Handle(ctx, commands.UpdateOrderStatusCommand{OrderID: orderID, Status: status})
}

// GetStoredNotification returns the replayable response for a payment
// notification key, if one was processed before.
func (s *Service) GetStoredNotification(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.notifications.Get(ctx, key)
}

// SaveNotification stores the response of a processed notification.
func (s *Service) SaveNotification(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.notifications.Save(ctx, key, response)
}
