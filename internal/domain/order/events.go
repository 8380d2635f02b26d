package order

import "time"

// OrderCreatedEvent is a domain event emitted when a new draft order is
// created.
type OrderCreatedEvent struct {
	OrderID    string
	CustomerID string
	OccurredAt time.Time
}

func (OrderCreatedEvent) EventName() string { return "order.created" }

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		OccurredAt: time.Now().UTC(),
	}
}

// OrderPaidEvent is emitted after a successful payment has been persisted.
type OrderPaidEvent struct {
	OrderID    string
	CustomerID string
	Total      Money
	OccurredAt time.Time
}

func (OrderPaidEvent) EventName() string { return "order.paid" }

func NewOrderPaidEvent(o *Order, total Money) OrderPaidEvent {
	return OrderPaidEvent{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		Total:      total,
		OccurredAt: time.Now().UTC(),
	}
}
