package order

import "context"

// Repository is the persistence port for the Order aggregate.
// Get returns ErrNotFound for unknown ids instead of failing.
// Save overwrites any prior entry stored under the order's id.
type Repository interface {
	Get(ctx context.Context, id string) (*Order, error)
	Save(ctx context.Context, order *Order) error
}
