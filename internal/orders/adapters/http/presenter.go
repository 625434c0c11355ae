package http

import (
	"time"

	"github.com/quickbite/orders/internal/orders/domain"
)

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	ID            int64          `json:"id"`
	Code          string         `json:"code"`
	CreatedAt     time.Time      `json:"createdAt"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	TotalPrice    float64        `json:"totalPrice"`
	CustomerID    *int64         `json:"customerId"`
	Items         []ItemResponse `json:"items"`
}

// ItemResponse is the wire representation of one order line.
type ItemResponse struct {
	ID                 int64   `json:"id"`
	OrderID            int64   `json:"orderId"`
	ProductID          int64   `json:"productId"`
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unitPrice"`
	TotalPrice         float64 `json:"totalPrice"`
}

// QRCodeResponse wraps the payment artifact returned by checkout.
type QRCodeResponse struct {
	QRCode string `json:"qrcode"`
}

func presentOrder(order *domain.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(order.Items))
	for idx := range order.Items {
		items = append(items, presentItem(&order.Items[idx]))
	}
	return OrderResponse{
		ID:            order.ID,
		Code:          order.Code,
		CreatedAt:     order.CreatedAt,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		TotalPrice:    order.TotalPrice.InexactFloat64(),
		CustomerID:    order.CustomerID,
		Items:         items,
	}
}

func presentItem(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:                 item.ID,
		OrderID:            item.OrderID,
		ProductID:          item.ProductID,
		ProductName:        item.ProductName,
		ProductDescription: item.ProductDescription,
		Quantity:           item.Quantity,
		UnitPrice:          item.UnitPrice.InexactFloat64(),
		TotalPrice:         item.TotalPrice.InexactFloat64(),
	}
}

func presentOrders(orders []domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		result = append(result, presentOrder(&orders[idx]))
	}
	return result
}
