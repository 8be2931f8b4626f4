// Package memory provides an in-memory ItemStore. It is the reference
// implementation of the catalog contract and the test double used by
// application-layer tests.
package memory

import (
	"context"
	"sync"

	catalogdomain "github.com/ghuser/cakeshop/services/catalog/domain"
	"github.com/ghuser/cakeshop/services/catalog/domain/models"
	"github.com/ghuser/cakeshop/services/catalog/domain/repositories"
)

// ItemStore is a concurrency-safe in-memory implementation of repositories.ItemStore.
type ItemStore struct {
	mu    sync.RWMutex
	items map[models.ItemID]models.Item
}

// NewItemStore returns an empty in-memory store.
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[models.ItemID]models.Item)}
}

// Save persists a new item. Returns ErrItemAlreadyExists if the slug is taken.
func (s *ItemStore) Save(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; ok {
		return catalogdomain.ErrItemAlreadyExists
	}
	s.items[item.ID] = *item
	return nil
}

// GetItem retrieves an item by slug. Returns ErrItemNotFound if absent.
func (s *ItemStore) GetItem(_ context.Context, id models.ItemID) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, catalogdomain.ErrItemNotFound
	}
	return &item, nil
}

// ListItems retrieves items matching the filter in unspecified order.
func (s *ItemStore) ListItems(_ context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Item
	for _, item := range s.items {
		if filter.Flavour != "" && item.Flavour != filter.Flavour {
			continue
		}
		item := item
		out = append(out, &item)
	}
	return out, nil
}

// Update persists edits to an existing item. Returns ErrItemNotFound if absent.
func (s *ItemStore) Update(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return catalogdomain.ErrItemNotFound
	}
	s.items[item.ID] = *item
	return nil
}
