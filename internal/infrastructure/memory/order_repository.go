package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/minpay/orderpay/internal/domain/order"
)

// OrderRepository keeps aggregates in a map keyed by order id. It clones
// on both read and write, so callers always operate on snapshots and can
// never mutate stored state through a returned aggregate.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	ord, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ord.Clone(), nil
}

// Save overwrites any prior entry stored under the order's id.
func (r *OrderRepository) Save(ctx context.Context, ord *domain.Order) error {
	_ = ctx
	if ord == nil || ord.ID() == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[ord.ID()] = ord.Clone()
	return nil
}

// Clear empties the store. Intended for tests.
func (r *OrderRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = make(map[string]*domain.Order)
}
