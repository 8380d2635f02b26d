package receipt

import (
	"context"
	"sync"
	"time"

	domain "github.com/minpay/orderpay/internal/domain/order"
	domoutbox "github.com/minpay/orderpay/internal/domain/outbox"
	"github.com/minpay/orderpay/internal/observability"
)

// Receipt is the record issued for a completed payment.
type Receipt struct {
	OrderID    string
	CustomerID string
	Amount     domain.Money
	IssuedAt   time.Time
}

// Worker issues receipts for paid orders. It subscribes to the order.paid
// event and keeps the issued receipts in memory.
type Worker struct {
	subscriber domoutbox.Subscriber
	log        observability.Logger

	mu       sync.Mutex
	receipts []Receipt
}

func New(subscriber domoutbox.Subscriber, tel observability.Observability) *Worker {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Worker{
		subscriber: subscriber,
		log:        tel.Logger().With(observability.F("component", "receipt_worker")),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil {
		return
	}
	w.subscriber.Subscribe(domain.OrderPaidEvent{}.EventName(), w.handleOrderPaid)
}

func (w *Worker) handleOrderPaid(ctx context.Context, e domoutbox.Event) error {
	_ = ctx

	evt, ok := e.(domain.OrderPaidEvent)
	if !ok {
		return nil
	}

	receipt := Receipt{
		OrderID:    evt.OrderID,
		CustomerID: evt.CustomerID,
		Amount:     evt.Total,
		IssuedAt:   time.Now().UTC(),
	}

	w.mu.Lock()
	w.receipts = append(w.receipts, receipt)
	w.mu.Unlock()

	w.log.Info("receipt_issued",
		observability.F("order_id", evt.OrderID),
		observability.F("amount", evt.Total.Amount),
		observability.F("currency", evt.Total.Currency),
	)
	return nil
}

// Receipts returns a copy of the issued receipts.
func (w *Worker) Receipts() []Receipt {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Receipt, len(w.receipts))
	copy(out, w.receipts)
	return out
}
