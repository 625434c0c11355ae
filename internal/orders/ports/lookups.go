package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Customer is the read-only projection of a registered customer.
type Customer struct {
	ID    int64
	Name  string
	Email string
}

// Product is the read-only projection of a catalog product. Name and
// description are snapshotted onto items at add time.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
}

// CustomerLookup resolves customers referenced by incoming orders.
// A nil result with a nil error means the customer does not exist.
type CustomerLookup interface {
	FindByID(ctx context.Context, id int64) (*Customer, error)
}

// ProductLookup resolves products referenced by item additions.
// A nil result with a nil error means the product does not exist.
type ProductLookup interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
}
