package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest carries what the provider needs to issue a payment
// artifact for an order.
type PaymentRequest struct {
	OrderID     int64
	TotalAmount decimal.Decimal
	Title       string
}

// PaymentDetails is the provider's view of a payment, fetched when an
// asynchronous notification arrives. OrderID is the provider's
// external reference back to the order.
type PaymentDetails struct {
	PaymentID  int64
	OrderID    int64
	Status     string
	ApprovedAt *time.Time
}

// PaymentGateway abstracts the payment provider. RequestPayment
// returns an opaque artifact (QR/display code) shown to the customer.
// FetchDetails returns nil with a nil error when the provider does not
// know the payment id; transport failures propagate as errors.
type PaymentGateway interface {
	RequestPayment(ctx context.Context, req PaymentRequest) (string, error)
	FetchDetails(ctx context.Context, paymentID int64) (*PaymentDetails, error)
}
