package order

import "errors"

type Status string

// remember to add new statuses to the validStatuses map
const (
	StatusDraft Status = "draft"
	StatusPaid  Status = "paid"
	// StatusCancelled is reserved for a future cancellation flow;
	// no operation currently transitions into it.
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]struct{}{
	StatusDraft:     {},
	StatusPaid:      {},
	StatusCancelled: {},
}

func ToStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validStatuses[status]; ok {
		return status, nil
	}
	return "", errors.New("invalid order status")
}
