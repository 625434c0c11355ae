package domain

import "github.com/shopspring/decimal"

// Item is one product line of an order. Items exist only inside their
// owning order; they have no identity of their own beyond persistence
// bookkeeping.
type Item struct {
	ID                 int64           `json:"id"`
	OrderID            int64           `json:"order_id"`
	ProductID          int64           `json:"product_id"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	TotalPrice         decimal.Decimal `json:"total_price"`
}

// ItemParams carries the inputs for constructing an item. ID is zero
// until persistence assigns one.
type ItemParams struct {
	ID                 int64
	OrderID            int64
	ProductID          int64
	ProductName        string
	ProductDescription string
	Quantity           int
	UnitPrice          decimal.Decimal
}

// NewItem builds an item, validating the quantity and deriving the
// total price. Product linkage and unit price are fixed at creation.
func NewItem(params ItemParams) (*Item, error) {
	item := &Item{
		ID:                 params.ID,
		OrderID:            params.OrderID,
		ProductID:          params.ProductID,
		ProductName:        params.ProductName,
		ProductDescription: params.ProductDescription,
		UnitPrice:          params.UnitPrice,
	}
	if err := item.SetQuantity(params.Quantity); err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity replaces the quantity and recomputes the total price.
// Quantity must be a positive integer.
func (i *Item) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return &InvalidQuantityError{Quantity: quantity}
	}
	i.Quantity = quantity
	i.updateTotalPrice()
	return nil
}

func (i *Item) updateTotalPrice() {
	i.TotalPrice = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}
