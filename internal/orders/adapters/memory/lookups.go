package memory

import (
	"context"
	"sync"

	"github.com/quickbite/orders/internal/orders/ports"
)

// CustomerLookup is an in-memory customer directory.
type CustomerLookup struct {
	mu        sync.RWMutex
	customers map[int64]ports.Customer
}

func NewCustomerLookup() *CustomerLookup {
	return &CustomerLookup{customers: make(map[int64]ports.Customer)}
}

// Add registers a customer for subsequent lookups.
func (l *CustomerLookup) Add(customer ports.Customer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.customers[customer.ID] = customer
}

func (l *CustomerLookup) FindByID(_ context.Context, id int64) (*ports.Customer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	customer, ok := l.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

// ProductLookup is an in-memory product catalog.
type ProductLookup struct {
	mu       sync.RWMutex
	products map[int64]ports.Product
}

func NewProductLookup() *ProductLookup {
	return &ProductLookup{products: make(map[int64]ports.Product)}
}

// Add registers a product for subsequent lookups.
func (l *ProductLookup) Add(product ports.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.products[product.ID] = product
}

func (l *ProductLookup) FindByID(_ context.Context, id int64) (*ports.Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	product, ok := l.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}
