package repositories

import (
	"context"

	"github.com/ghuser/cakeshop/services/catalog/domain/models"
)

// ItemFilter narrows ListItems results. Zero value matches everything.
type ItemFilter struct {
	Flavour string // exact match on the flavour tag; empty matches all
}

// ItemStore is the persistence interface for catalog items.
// The domain layer owns this interface; infrastructure implements it.
//
// Items referenced by orders are never deleted, so no Delete is offered.
type ItemStore interface {
	// Save persists a new item. Returns ErrItemAlreadyExists if the slug is taken.
	Save(ctx context.Context, item *models.Item) error

	// GetItem retrieves an item by slug. Returns ErrItemNotFound if absent.
	GetItem(ctx context.Context, id models.ItemID) (*models.Item, error)

	// ListItems retrieves items matching the filter. Result order is not significant.
	ListItems(ctx context.Context, filter ItemFilter) ([]*models.Item, error)

	// Update persists administrator edits to name, price, flavour, or description.
	// Returns ErrItemNotFound if the item does not exist.
	Update(ctx context.Context, item *models.Item) error
}
