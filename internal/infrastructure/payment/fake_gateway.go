package payment

import (
	"context"
	"sync"

	domain "github.com/minpay/orderpay/internal/domain/order"
)

// Charge records one performed charge.
type Charge struct {
	OrderID string
	Amount  domain.Money
}

// FakeGateway simulates a payment provider without touching a real
// payment network. Every charge attempt is recorded; the configured flag
// decides whether charges succeed or are declined.
type FakeGateway struct {
	mu            sync.Mutex
	shouldSucceed bool
	charges       []Charge
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{shouldSucceed: true}
}

func (g *FakeGateway) Charge(ctx context.Context, orderID string, amount domain.Money) (bool, error) {
	// respect cancellation even though this is simulated
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.charges = append(g.charges, Charge{OrderID: orderID, Amount: amount})
	return g.shouldSucceed, nil
}

// SetShouldSucceed controls whether subsequent charges succeed.
func (g *FakeGateway) SetShouldSucceed(v bool) {
	g.mu.Lock()
	g.shouldSucceed = v
	g.mu.Unlock()
}

// Charges returns a copy of the recorded charges.
func (g *FakeGateway) Charges() []Charge {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Charge, len(g.charges))
	copy(out, g.charges)
	return out
}

// Clear drops the recorded history. Intended for tests.
func (g *FakeGateway) Clear() {
	g.mu.Lock()
	g.charges = nil
	g.mu.Unlock()
}
