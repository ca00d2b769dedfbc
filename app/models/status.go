package models

import "fmt"

// ItemStatus is the fulfilment state of a single order item.
type ItemStatus string

const (
	StatusProcessing     ItemStatus = "Processing"
	StatusPacked         ItemStatus = "Packed"
	StatusShipped        ItemStatus = "Shipped"
	StatusOutForDelivery ItemStatus = "Out for Delivery"
	StatusDelivered      ItemStatus = "Delivered"
	StatusCancelled      ItemStatus = "Cancelled"
	StatusReturned       ItemStatus = "Returned"
)

// Payment states shared by orders and items.
const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentRefunded = "Refunded"
)

// Payment methods.
const (
	PaymentMethodCOD    = "COD"
	PaymentMethodOnline = "Online"
)

// transitions is the single source of truth for legal item status moves.
// Cancelled and Returned are absorbing.
var transitions = map[ItemStatus][]ItemStatus{
	StatusProcessing:     {StatusPacked, StatusCancelled},
	StatusPacked:         {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {StatusReturned},
	StatusCancelled:      {},
	StatusReturned:       {},
}

// ValidStatus reports whether s is a known item status.
func ValidStatus(s ItemStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an item may move from one status to another.
func CanTransition(from, to ItemStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates a status move, returning the new status or an error
// naming both states. Every mutating endpoint goes through this function.
func Transition(from, to ItemStatus) (ItemStatus, error) {
	if !ValidStatus(to) {
		return from, fmt.Errorf("unknown status %q", to)
	}
	if !CanTransition(from, to) {
		return from, fmt.Errorf("cannot move item from %q to %q", from, to)
	}
	return to, nil
}

// CanCancel reports whether an item in the given status may still be
// cancelled by the customer.
func CanCancel(s ItemStatus) bool {
	switch s {
	case StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusReturned:
		return false
	}
	return true
}
