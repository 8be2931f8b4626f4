package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/cakeshop/pkg/cache"
	catalogdomain "github.com/ghuser/cakeshop/services/catalog/domain"
	"github.com/ghuser/cakeshop/services/catalog/domain/models"
	"github.com/ghuser/cakeshop/services/catalog/domain/repositories"
)

// CatalogService orchestrates administration and lookup of catalog items.
// Event publishing is handled by the store layer (outbox pattern).
// Reads are served from Redis cache when available.
type CatalogService struct {
	store repositories.ItemStore
	cache *pkgcache.CatalogCache
}

// NewCatalogService returns a CatalogService wired with the given store and cache.
func NewCatalogService(store repositories.ItemStore, cache *pkgcache.CatalogCache) *CatalogService {
	return &CatalogService{store: store, cache: cache}
}

// Create validates and persists a new catalog item. The store publishes
// ItemCreatedEvent transactionally.
func (s *CatalogService) Create(ctx context.Context, id, name string, unitPrice decimal.Decimal, flavour, description string) (*models.Item, error) {
	itemID, err := models.NewItemID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidItem, err)
	}

	item, err := models.NewItem(itemID, name, unitPrice, flavour, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidItem, err)
	}

	if err := s.store.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save catalog item: %w", err)
	}

	return item, nil
}

// GetItem retrieves a catalog item using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *CatalogService) GetItem(ctx context.Context, id models.ItemID) (*models.Item, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id.String()); err == nil {
			if item, convErr := cachedToItem(cached); convErr == nil {
				return item, nil
			}
		}
		// redis.Nil and transport errors both fall through to Postgres.
	}

	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get catalog item: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), itemToCached(item))
		}()
	}

	return item, nil
}

// ListItems returns catalog items, optionally filtered by flavour.
func (s *CatalogService) ListItems(ctx context.Context, flavour string) ([]*models.Item, error) {
	items, err := s.store.ListItems(ctx, repositories.ItemFilter{Flavour: flavour})
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	return items, nil
}

// Update persists administrator edits and invalidates the cache entry so the
// next read observes the new price. Orders are unaffected: they snapshot name
// and price at creation time.
func (s *CatalogService) Update(ctx context.Context, item *models.Item) error {
	if err := s.store.Update(ctx, item); err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), item.ID.String())
	}
	return nil
}

// cachedToItem and itemToCached must stay field-complete: a cache hit serves
// the reconstructed Item verbatim, so any field dropped here silently defaults
// on every read.
// UpdateItem applies administrator edits to an existing item. The slug and
// creation time are immutable; everything else is replaced after revalidation.
func (s *CatalogService) UpdateItem(ctx context.Context, id models.ItemID, name string, unitPrice decimal.Decimal, flavour, description string) (*models.Item, error) {
	existing, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get catalog item: %w", err)
	}

	updated, err := models.NewItem(id, name, unitPrice, flavour, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidItem, err)
	}
	updated.CreatedAt = existing.CreatedAt

	if err := s.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func cachedToItem(cached *pkgcache.CachedCatalogItem) (*models.Item, error) {
	price, err := decimal.NewFromString(cached.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("parse cached unit price: %w", err)
	}
	return &models.Item{
		ID:          models.ItemID(cached.ID),
		Name:        cached.Name,
		UnitPrice:   price,
		Flavour:     cached.Flavour,
		Description: cached.Description,
		CreatedAt:   cached.CreatedAt,
	}, nil
}

func itemToCached(item *models.Item) *pkgcache.CachedCatalogItem {
	return &pkgcache.CachedCatalogItem{
		ID:          item.ID.String(),
		Name:        item.Name,
		UnitPrice:   item.UnitPrice.String(),
		Flavour:     item.Flavour,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
	}
}
