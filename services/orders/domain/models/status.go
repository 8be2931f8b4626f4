package models

import "fmt"

// Status is the delivery state of an order.
//
// Transition graph:
//
//	Pending ──▶ OutForDelivery ──▶ Delivered
//	   │              │
//	   └──────┬───────┘
//	          ▼
//	      Cancelled
//
// Delivered and Cancelled are terminal.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

// ParseStatus validates a stored or user-supplied status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// CanTransitionTo reports whether the state machine permits moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusOutForDelivery || next == StatusCancelled
	case StatusOutForDelivery:
		return next == StatusDelivered || next == StatusCancelled
	default: // Delivered and Cancelled are terminal
		return false
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// String returns the underlying string value.
func (s Status) String() string {
	return string(s)
}
