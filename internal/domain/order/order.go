package order

import (
	"errors"

	"github.com/samber/lo"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrEmptyOrder      = errors.New("order: cannot pay empty order")
	ErrAlreadyPaid     = errors.New("order: already paid")
	ErrModifyPaidOrder = errors.New("order: cannot modify paid order")
)

// Order is the aggregate root. It owns its lines and enforces the payment
// invariants: an empty order cannot be paid, a paid order cannot be paid
// again, and lines are frozen once the order is paid.
type Order struct {
	id         string
	customerID string
	lines      []Line
	status     Status
}

// New creates a draft order with no lines.
func New(id, customerID string) *Order {
	return &Order{
		id:         id,
		customerID: customerID,
		status:     StatusDraft,
	}
}

func (o *Order) ID() string         { return o.id }
func (o *Order) CustomerID() string { return o.customerID }
func (o *Order) Status() Status     { return o.status }

// Lines returns a defensive copy in insertion order; callers cannot reach
// the internal slice.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// AddLine appends a line. Duplicate product names are kept as separate
// lines; there is no merge logic.
func (o *Order) AddLine(line Line) error {
	if o.status == StatusPaid {
		return ErrModifyPaidOrder
	}
	if line.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	o.lines = append(o.lines, line)
	return nil
}

// RemoveLine drops every line matching the product name. A missing name is
// a no-op, not a failure.
func (o *Order) RemoveLine(productName string) error {
	if o.status == StatusPaid {
		return ErrModifyPaidOrder
	}
	o.lines = lo.Filter(o.lines, func(l Line, _ int) bool {
		return l.ProductName != productName
	})
	return nil
}

// Total folds line totals left to right, seeded with zero in the first
// line's currency. An order without lines totals zero in the default
// currency. Mixed currencies surface as ErrCurrencyMismatch.
func (o *Order) Total() (Money, error) {
	if len(o.lines) == 0 {
		return Zero(DefaultCurrency), nil
	}

	total := Zero(o.lines[0].UnitPrice.Currency)
	for _, line := range o.lines {
		sum, err := total.Add(line.Total())
		if err != nil {
			return Money{}, err
		}
		total = sum
	}
	return total, nil
}

// Pay transitions the order from draft to paid. This is the only exposed
// status mutation.
func (o *Order) Pay() error {
	if len(o.lines) == 0 {
		return ErrEmptyOrder
	}
	if o.status == StatusPaid {
		return ErrAlreadyPaid
	}
	o.status = StatusPaid
	return nil
}

func (o *Order) IsPaid() bool {
	return o.status == StatusPaid
}

// Clone returns a deep copy. Repositories rely on it for snapshot
// semantics so stored state cannot be mutated through returned aggregates.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := &Order{
		id:         o.id,
		customerID: o.customerID,
		status:     o.status,
	}
	if o.lines != nil {
		clone.lines = make([]Line, len(o.lines))
		copy(clone.lines, o.lines)
	}
	return clone
}
