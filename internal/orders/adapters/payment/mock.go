package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/quickbite/orders/internal/orders/ports"
)

// MockGateway simulates the payment provider for local development and
// tests. Requested payments get a deterministic artifact; details can
// be seeded to drive webhook scenarios.
type MockGateway struct {
	mu       sync.RWMutex
	details  map[int64]ports.PaymentDetails
	requests []ports.PaymentRequest
}

func NewMockGateway() *MockGateway {
	return &MockGateway{details: make(map[int64]ports.PaymentDetails)}
}

// SeedDetails registers the details returned for a payment id.
func (g *MockGateway) SeedDetails(details ports.PaymentDetails) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.details[details.PaymentID] = details
}

// Requests returns every payment request seen so far.
func (g *MockGateway) Requests() []ports.PaymentRequest {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]ports.PaymentRequest, len(g.requests))
	copy(out, g.requests)
	return out
}

func (g *MockGateway) RequestPayment(_ context.Context, req ports.PaymentRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return fmt.Sprintf("qr-data-order-%d", req.OrderID), nil
}

func (g *MockGateway) FetchDetails(_ context.Context, paymentID int64) (*ports.PaymentDetails, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	details, ok := g.details[paymentID]
	if !ok {
		return nil, nil
	}
	return &details, nil
}
