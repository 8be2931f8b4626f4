package domain

import "errors"

// Sentinel errors for the orders domain. Use errors.Is() to check these.
var (
	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidQuantity indicates a quantity below 1.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidAddress indicates a blank delivery address.
	ErrInvalidAddress = errors.New("invalid delivery address")

	// ErrInvalidStatusTransition indicates a transition the delivery state
	// machine does not permit. The stored order is left unchanged.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrNoOrders indicates a user has no orders yet. This is an absent-result
	// state, not a failure; dashboard projections render a placeholder for it.
	ErrNoOrders = errors.New("no orders found")

	// ErrStorageUnavailable indicates the backing store could not be reached
	// or returned a row that fails strict decoding.
	ErrStorageUnavailable = errors.New("order storage unavailable")

	// ErrOrderCreationFailed wraps a storage failure during order creation.
	// The operation performs no retry; the caller decides.
	ErrOrderCreationFailed = errors.New("order creation failed")
)
