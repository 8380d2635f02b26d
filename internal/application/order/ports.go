package order

import (
	"context"

	domain "github.com/minpay/orderpay/internal/domain/order"
)

// PaymentGateway is the outbound port for charging a customer. It returns
// false for a declined charge; errors are reserved for transport failures
// and propagate to the caller.
type PaymentGateway interface {
	Charge(ctx context.Context, orderID string, amount domain.Money) (bool, error)
}

// IDGenerator produces identities for new orders.
type IDGenerator interface {
	NewID() string
}
