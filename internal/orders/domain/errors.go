package domain

import (
	"fmt"
	"strconv"
)

// Resource names the entity kinds referenced by ResourceNotFoundError.
type Resource string

const (
	ResourceOrder    Resource = "Order"
	ResourceItem     Resource = "Item"
	ResourceProduct  Resource = "Product"
	ResourceCustomer Resource = "Customer"
	ResourcePayment  Resource = "Payment"
)

// ResourceNotFoundError signals that a referenced entity does not exist.
type ResourceNotFoundError struct {
	Resource Resource
	Field    string
	Value    any
}

func NewResourceNotFound(resource Resource, field string, value any) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: resource, Field: field, Value: value}
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found for %s '%v'", e.Resource, e.Field, e.Value)
}

// ClosedOrderError signals a structural mutation on an order that has
// left the CREATED state.
type ClosedOrderError struct {
	OrderID int64
	Status  OrderStatus
}

func (e *ClosedOrderError) Error() string {
	return fmt.Sprintf("Cannot modify order '%d' with status '%s'.", e.OrderID, e.Status)
}

// EmptyOrderError signals an attempted checkout of an order with no items.
type EmptyOrderError struct{}

func (e *EmptyOrderError) Error() string {
	return "Cannot checkout an order with no items"
}

// InvalidStatusTransitionError signals an illegal jump in the status
// pipeline. Allowed holds the one predecessor the target accepts.
type InvalidStatusTransitionError struct {
	Current OrderStatus
	Target  OrderStatus
	Allowed []OrderStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	allowed := ""
	for i, s := range e.Allowed {
		if i > 0 {
			allowed += ","
		}
		allowed += string(s)
	}
	return fmt.Sprintf("Cannot change status from %s to %s. Allowed status are: %s", e.Current, e.Target, allowed)
}

// ForbiddenPaymentStatusChangeError signals a PAYED transition without
// an approved payment.
type ForbiddenPaymentStatusChangeError struct{}

func (e *ForbiddenPaymentStatusChangeError) Error() string {
	return "Cannot change status paid if payment status is not approved"
}

// OrderFinishedError signals any status mutation after the terminal state.
type OrderFinishedError struct{}

func (e *OrderFinishedError) Error() string {
	return "Order is finished and cannot change status"
}

// InvalidQuantityError signals a missing, zero or negative item quantity.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return "Invalid quantity '" + strconv.Itoa(e.Quantity) + "': must be a positive integer"
}
