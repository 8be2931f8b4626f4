package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested catalog item does not exist.
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrItemAlreadyExists indicates an item with the same ID already exists.
	ErrItemAlreadyExists = errors.New("catalog item already exists")

	// ErrInvalidItem indicates the item violates domain constraints.
	ErrInvalidItem = errors.New("invalid catalog item")
)
