package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root for one customer transaction. It owns
// its items exclusively and enforces the status pipeline and total
// price invariants on every mutation. Mutate it only through its
// methods; the exported fields exist for persistence mapping.
type Order struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	CreatedAt     time.Time       `json:"created_at"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CustomerID    *int64          `json:"customer_id"`
	Items         []Item          `json:"items"`
}

// NewOrder builds a fresh order in the CREATED state with a PENDING
// payment and no items. A nil customerID denotes an anonymous order.
func NewOrder(code string, customerID *int64) *Order {
	return &Order{
		Code:          code,
		Status:        StatusCreated,
		PaymentStatus: PaymentPending,
		TotalPrice:    decimal.Zero,
		CustomerID:    customerID,
	}
}

// SetStatus transitions the order along the fulfillment pipeline.
// Unrecognized status strings are ignored without error; callers that
// need strictness must validate beforehand. The new status is only
// committed when the terminal guard, the predecessor check and the
// target-specific guard all pass.
func (o *Order) SetStatus(raw string) error {
	target, ok := ParseOrderStatus(raw)
	if !ok {
		return nil
	}

	if o.Status == StatusFinished && target != StatusFinished {
		return &OrderFinishedError{}
	}

	pred, hasPred := target.predecessor()
	if o.Status != "" && (!hasPred || o.Status != pred) {
		allowed := []OrderStatus{}
		if hasPred {
			allowed = append(allowed, pred)
		}
		return &InvalidStatusTransitionError{Current: o.Status, Target: target, Allowed: allowed}
	}

	switch target {
	case StatusPendingPayment:
		if len(o.Items) == 0 {
			return &EmptyOrderError{}
		}
	case StatusPayed:
		if o.PaymentStatus != PaymentApproved {
			return &ForbiddenPaymentStatusChangeError{}
		}
	}

	o.Status = target
	return nil
}

// SetPaymentStatus assigns the externally reported payment outcome.
// Unrecognized values are ignored. It does not consult the order
// status; the PAYED gate lives in SetStatus.
func (o *Order) SetPaymentStatus(raw string) {
	status, ok := ParsePaymentStatus(raw)
	if !ok {
		return
	}
	o.PaymentStatus = status
}

// AddItem appends a new line to the order. Only CREATED orders accept
// structural changes.
func (o *Order) AddItem(params ItemParams) (*Item, error) {
	if o.Status != StatusCreated {
		return nil, &ClosedOrderError{OrderID: o.ID, Status: o.Status}
	}

	params.OrderID = o.ID
	item, err := NewItem(params)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.RecalculateTotal()
	return item, nil
}

// UpdateItem changes the quantity of an existing line.
func (o *Order) UpdateItem(itemID int64, quantity int) (*Item, error) {
	if o.Status != StatusCreated {
		return nil, &ClosedOrderError{OrderID: o.ID, Status: o.Status}
	}

	for idx := range o.Items {
		if o.Items[idx].ID != itemID {
			continue
		}
		if err := o.Items[idx].SetQuantity(quantity); err != nil {
			return nil, err
		}
		o.RecalculateTotal()
		return &o.Items[idx], nil
	}

	return nil, NewResourceNotFound(ResourceItem, "id", itemID)
}

// RemoveItem deletes a line from the order.
func (o *Order) RemoveItem(itemID int64) error {
	if o.Status != StatusCreated {
		return &ClosedOrderError{OrderID: o.ID, Status: o.Status}
	}

	for idx := range o.Items {
		if o.Items[idx].ID != itemID {
			continue
		}
		o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
		o.RecalculateTotal()
		return nil
	}

	return NewResourceNotFound(ResourceItem, "id", itemID)
}

// RecalculateTotal restores the total price invariant: the sum of the
// item totals, rounded to 2 decimals after summation.
func (o *Order) RecalculateTotal() {
	sum := decimal.Zero
	for idx := range o.Items {
		sum = sum.Add(o.Items[idx].TotalPrice)
	}
	o.TotalPrice = sum.Round(2)
}

// ElapsedTime returns the wall-clock duration since creation, or 0
// when the creation time is unknown.
func (o *Order) ElapsedTime() time.Duration {
	if o.CreatedAt.IsZero() {
		return 0
	}
	return time.Since(o.CreatedAt)
}
