package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	idempotencymem "github.com/quickbite/orders/internal/idempotency/memory"
	"github.com/quickbite/orders/internal/kafka"
	"github.com/quickbite/orders/internal/orders/adapters/memory"
	"github.com/quickbite/orders/internal/orders/adapters/payment"
	"github.com/quickbite/orders/internal/orders/app"
	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/metrics"
	"github.com/quickbite/orders/internal/orders/ports"
)

type fixture struct {
	service   *app.Service
	repo      *memory.Repository
	customers *memory.CustomerLookup
	products  *memory.ProductLookup
	gateway   *payment.MockGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := memory.NewRepository()
	customers := memory.NewCustomerLookup()
	products := memory.NewProductLookup()
	gateway := payment.NewMockGateway()
	events := kafka.NewNoopEventBus()
	notifications := idempotencymem.NewStore()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m, err := metrics.NewMetrics(otel.Meter("test"))
	require.NoError(t, err)

	service := app.NewService(repo, customers, products, gateway, events, notifications, logger, m)

	return &fixture{
		service:   service,
		repo:      repo,
		customers: customers,
		products:  products,
		gateway:   gateway,
	}
}

func (f *fixture) seedProduct(id int64, name string, price float64) {
	f.products.Add(ports.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Price:       decimal.NewFromFloat(price),
	})
}

// openOrder creates an order with one line of the given product.
func (f *fixture) openOrder(t *testing.T, productID int64, quantity int) *domain.Order {
	t.Helper()
	order, err := f.service.CreateOrder(context.Background(), nil)
	require.NoError(t, err)
	order, err = f.service.AddItem(context.Background(), order.ID, productID, quantity)
	require.NoError(t, err)
	return order
}

// payOrder walks an order through checkout and an approved payment.
func (f *fixture) payOrder(t *testing.T, orderID, paymentID int64) *domain.Order {
	t.Helper()
	_, err := f.service.Checkout(context.Background(), orderID)
	require.NoError(t, err)
	f.gateway.SeedDetails(ports.PaymentDetails{
		PaymentID: paymentID,
		OrderID:   orderID,
		Status:    string(domain.PaymentApproved),
	})
	order, err := f.service.RecordPaymentResult(context.Background(), paymentID)
	require.NoError(t, err)
	return order
}

func TestCreateOrder(t *testing.T) {
	t.Run("anonymous order starts empty and created", func(t *testing.T) {
		f := newFixture(t)

		order, err := f.service.CreateOrder(context.Background(), nil)

		require.NoError(t, err)
		assert.NotZero(t, order.ID)
		assert.Len(t, order.Code, 4)
		assert.Equal(t, domain.StatusCreated, order.Status)
		assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
		assert.True(t, order.TotalPrice.IsZero())
		assert.Nil(t, order.CustomerID)
		assert.Empty(t, order.Items)
	})

	t.Run("binds a known customer", func(t *testing.T) {
		f := newFixture(t)
		f.customers.Add(ports.Customer{ID: 7, Name: "Ana", Email: "ana@example.com"})
		customerID := int64(7)

		order, err := f.service.CreateOrder(context.Background(), &customerID)

		require.NoError(t, err)
		require.NotNil(t, order.CustomerID)
		assert.Equal(t, int64(7), *order.CustomerID)
	})

	t.Run("rejects an unknown customer", func(t *testing.T) {
		f := newFixture(t)
		customerID := int64(99)

		_, err := f.service.CreateOrder(context.Background(), &customerID)

		var notFound *domain.ResourceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.ResourceCustomer, notFound.Resource)
	})
}

func TestAddItem(t *testing.T) {
	t.Run("snapshots the product and updates the total", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Burger", 12.90)
		order, err := f.service.CreateOrder(context.Background(), nil)
		require.NoError(t, err)

		updated, err := f.service.AddItem(context.Background(), order.ID, 1, 2)

		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		item := updated.Items[0]
		assert.NotZero(t, item.ID)
		assert.Equal(t, "Burger", item.ProductName)
		assert.Equal(t, 2, item.Quantity)
		assert.True(t, item.TotalPrice.Equal(decimal.NewFromFloat(25.80)), "item total %s", item.TotalPrice)
		assert.True(t, updated.TotalPrice.Equal(decimal.NewFromFloat(25.80)), "order total %s", updated.TotalPrice)
	})

	t.Run("missing order wins over missing product", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.AddItem(context.Background(), 99, 88, 1)

		var notFound *domain.ResourceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.ResourceOrder, notFound.Resource)
	})

	t.Run("missing product on an existing order", func(t *testing.T) {
		f := newFixture(t)
		order, err := f.service.CreateOrder(context.Background(), nil)
		require.NoError(t, err)

		_, err = f.service.AddItem(context.Background(), order.ID, 88, 1)

		var notFound *domain.ResourceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.ResourceProduct, notFound.Resource)
	})

	t.Run("rejects additions after checkout", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Burger", 12.90)
		order := f.openOrder(t, 1, 1)
		_, err := f.service.Checkout(context.Background(), order.ID)
		require.NoError(t, err)

		_, err = f.service.AddItem(context.Background(), order.ID, 1, 1)

		var closed *domain.ClosedOrderError
		require.ErrorAs(t, err, &closed)
	})
}

func TestUpdateAndDeleteItem(t *testing.T) {
	t.Run("update changes quantity and totals", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Fries", 4.50)
		order := f.openOrder(t, 1, 1)

		updated, err := f.service.UpdateItem(context.Background(), order.ID, order.Items[0].ID, 3)

		require.NoError(t, err)
		assert.Equal(t, 3, updated.Items[0].Quantity)
		assert.True(t, updated.TotalPrice.Equal(decimal.NewFromFloat(13.50)), "order total %s", updated.TotalPrice)
	})

	t.Run("delete removes the line and recomputes the total", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Fries", 4.50)
		f.seedProduct(2, "Soda", 3.00)
		order := f.openOrder(t, 1, 2)
		order, err := f.service.AddItem(context.Background(), order.ID, 2, 1)
		require.NoError(t, err)

		err = f.service.DeleteItem(context.Background(), order.ID, order.Items[0].ID)
		require.NoError(t, err)

		reloaded, err := f.service.GetOrder(context.Background(), order.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Items, 1)
		assert.True(t, reloaded.TotalPrice.Equal(decimal.NewFromFloat(3.00)), "order total %s", reloaded.TotalPrice)
	})

	t.Run("update on an unknown item", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Fries", 4.50)
		order := f.openOrder(t, 1, 1)

		_, err := f.service.UpdateItem(context.Background(), order.ID, 999, 3)

		var notFound *domain.ResourceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.ResourceItem, notFound.Resource)
	})
}

func TestCheckout(t *testing.T) {
	t.Run("returns the payment artifact and parks the order", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Burger", 12.90)
		order := f.openOrder(t, 1, 1)

		artifact, err := f.service.Checkout(context.Background(), order.ID)

		require.NoError(t, err)
		assert.NotEmpty(t, artifact)

		reloaded, err := f.service.GetOrder(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPendingPayment, reloaded.Status)

		requests := f.gateway.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, order.ID, requests[0].OrderID)
		assert.Equal(t, "Order "+order.Code, requests[0].Title)
		assert.True(t, requests[0].TotalAmount.Equal(order.TotalPrice))
	})

	t.Run("rejects an empty order", func(t *testing.T) {
		f := newFixture(t)
		order, err := f.service.CreateOrder(context.Background(), nil)
		require.NoError(t, err)

		_, err = f.service.Checkout(context.Background(), order.ID)

		var empty *domain.EmptyOrderError
		require.ErrorAs(t, err, &empty)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Checkout(context.Background(), 404)

		var notFound *domain.ResourceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.ResourceOrder, notFound.Resource)
	})
}

func TestRecordPaymentResult(t *testing.T) {
	t.Run("approval advances the order to payed", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Burger", 12.90)
		order := f.openOrder(t, 1, 1)

		paid := f.payOrder(t, order.ID, 1001)

		assert.Equal(t, domain.StatusPayed, paid.Status)
		assert.Equal(t, domain.PaymentApproved, paid.PaymentStatus)
	})

	t.Run("denial records the outcome without advancing", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Burger", 12.90)
		order := f.openOrder(t, 1, 1)
		_, err := f.service.Checkout(context.Background(), order.ID)
		require.NoError(t, err)
		f.gateway.SeedDetails(ports.PaymentDetails{
			PaymentID: 1001,
			OrderID:   order.ID,
			Status:    string(domain.PaymentDenied),
		})

		updated, err := f.service.RecordPaymentResult(context.Background(), 1001)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPendingPayment, updated.Status)
		assert.Equal(t, domain.PaymentDenied, updated.PaymentStatus)
	})

	t.Run("repeated approval notifications are idempotent", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Burger", 12.90)
		order := f.openOrder(t, 1, 1)
		f.payOrder(t, order.ID, 1001)

		again, err := f.service.RecordPaymentResult(context.Background(), 1001)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPayed, again.Status)
	})

	t.Run("late notification after the kitchen picked up the order", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Burger", 12.90)
		order := f.openOrder(t, 1, 1)
		f.payOrder(t, order.ID, 1001)
		_, err := f.service.UpdateOrderStatus(context.Background(), order.ID, string(domain.StatusReceived))
		require.NoError(t, err)

		again, err := f.service.RecordPaymentResult(context.Background(), 1001)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusReceived, again.Status)
	})

	t.Run("unknown payment", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.RecordPaymentResult(context.Background(), 404)

		var notFound *domain.ResourceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.ResourcePayment, notFound.Resource)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("walks the fulfillment pipeline", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Burger", 12.90)
		order := f.openOrder(t, 1, 1)
		f.payOrder(t, order.ID, 1001)

		for _, status := range []domain.OrderStatus{
			domain.StatusReceived,
			domain.StatusPreparing,
			domain.StatusDone,
			domain.StatusFinished,
		} {
			updated, err := f.service.UpdateOrderStatus(context.Background(), order.ID, string(status))
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		}
	})

	t.Run("rejects skipping a stage", func(t *testing.T) {
		f := newFixture(t)
		f.seedProduct(1, "Burger", 12.90)
		order := f.openOrder(t, 1, 1)
		f.payOrder(t, order.ID, 1001)

		_, err := f.service.UpdateOrderStatus(context.Background(), order.ID, string(domain.StatusDone))

		var transition *domain.InvalidStatusTransitionError
		require.ErrorAs(t, err, &transition)
	})
}

func TestGetPaymentStatus(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(1, "Burger", 12.90)
	order := f.openOrder(t, 1, 1)
	f.payOrder(t, order.ID, 1001)

	status, err := f.service.GetPaymentStatus(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApproved, status)
}

func TestListOrders(t *testing.T) {
	t.Run("all orders come back newest first", func(t *testing.T) {
		f := newFixture(t)
		now := time.Now()
		tick := 0
		f.repo.WithTimeSource(func() time.Time {
			tick++
			return now.Add(time.Duration(tick) * time.Minute)
		})

		first, err := f.service.CreateOrder(context.Background(), nil)
		require.NoError(t, err)
		second, err := f.service.CreateOrder(context.Background(), nil)
		require.NoError(t, err)

		orders, err := f.service.GetOrdersAll(context.Background())

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[1].ID)
	})

	t.Run("empty store yields an empty slice", func(t *testing.T) {
		f := newFixture(t)

		orders, err := f.service.GetOrdersAll(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})
}
