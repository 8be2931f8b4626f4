package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/ghuser/cakeshop/services/catalog/domain"
	"github.com/ghuser/cakeshop/services/catalog/domain/models"
	"github.com/ghuser/cakeshop/services/catalog/domain/repositories"
)

func newItem(t *testing.T, id string, price float64, flavour string) *models.Item {
	t.Helper()
	itemID, err := models.NewItemID(id)
	if err != nil {
		t.Fatalf("new item id: %v", err)
	}
	item, err := models.NewItem(itemID, id+" cake", decimal.NewFromFloat(price), flavour, "")
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	return item
}

func TestItemStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore()
	item := newItem(t, "chocolate", 1500, "Chocolate")

	if err := store.Save(ctx, item); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != item.Name || !got.UnitPrice.Equal(item.UnitPrice) {
		t.Fatalf("round-trip mismatch: got %+v want %+v", got, item)
	}
}

func TestItemStore_SaveDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore()
	item := newItem(t, "chocolate", 1500, "Chocolate")

	if err := store.Save(ctx, item); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, item); !errors.Is(err, catalogdomain.ErrItemAlreadyExists) {
		t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
	}
}

func TestItemStore_GetMissing(t *testing.T) {
	store := NewItemStore()
	_, err := store.GetItem(context.Background(), models.ItemID("nope"))
	if !errors.Is(err, catalogdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemStore_ListItemsByFlavour(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore()
	for _, it := range []*models.Item{
		newItem(t, "chocolate", 1500, "Chocolate"),
		newItem(t, "vanilla", 1200, "Vanilla"),
		newItem(t, "dark-chocolate", 1600, "Chocolate"),
	} {
		if err := store.Save(ctx, it); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	all, err := store.ListItems(ctx, repositories.ItemFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 items, got %d", len(all))
	}

	choc, err := store.ListItems(ctx, repositories.ItemFilter{Flavour: "Chocolate"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(choc) != 2 {
		t.Fatalf("expected 2 chocolate items, got %d", len(choc))
	}
}

func TestItemStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore()
	item := newItem(t, "chocolate", 1500, "Chocolate")
	if err := store.Save(ctx, item); err != nil {
		t.Fatalf("save: %v", err)
	}

	item.UnitPrice = decimal.NewFromInt(1800)
	if err := store.Update(ctx, item); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.UnitPrice.Equal(decimal.NewFromInt(1800)) {
		t.Fatalf("expected updated price 1800, got %s", got.UnitPrice)
	}
}

func TestItemStore_UpdateMissing(t *testing.T) {
	store := NewItemStore()
	item := newItem(t, "chocolate", 1500, "Chocolate")
	if err := store.Update(context.Background(), item); !errors.Is(err, catalogdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
