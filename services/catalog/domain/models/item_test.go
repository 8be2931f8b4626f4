package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewItemID(t *testing.T) {
	t.Run("accepts simple slug", func(t *testing.T) {
		id, err := NewItemID("chocolate")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.String() != "chocolate" {
			t.Fatalf("expected chocolate, got %q", id)
		}
	})

	t.Run("accepts hyphenated slug", func(t *testing.T) {
		if _, err := NewItemID("red-velvet-2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		if _, err := NewItemID(""); err == nil {
			t.Fatal("expected error for empty id")
		}
	})

	t.Run("rejects uppercase", func(t *testing.T) {
		if _, err := NewItemID("Chocolate"); err == nil {
			t.Fatal("expected error for uppercase id")
		}
	})

	t.Run("rejects spaces", func(t *testing.T) {
		if _, err := NewItemID("red velvet"); err == nil {
			t.Fatal("expected error for id with spaces")
		}
	})

	t.Run("rejects trailing hyphen", func(t *testing.T) {
		if _, err := NewItemID("chocolate-"); err == nil {
			t.Fatal("expected error for trailing hyphen")
		}
	})
}

func TestNewItem(t *testing.T) {
	id := ItemID("chocolate")
	price := decimal.NewFromFloat(1500.0)

	t.Run("sets fields and CreatedAt", func(t *testing.T) {
		before := time.Now().UTC()
		item, err := NewItem(id, "Chocolate Cake", price, "Chocolate", "Rich chocolate cake")
		after := time.Now().UTC()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.ID != id {
			t.Fatalf("expected ID %v, got %v", id, item.ID)
		}
		if item.Name != "Chocolate Cake" {
			t.Fatalf("unexpected name %q", item.Name)
		}
		if !item.UnitPrice.Equal(price) {
			t.Fatalf("expected price %s, got %s", price, item.UnitPrice)
		}
		if item.CreatedAt.Before(before) || item.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", item.CreatedAt, before, after)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		if _, err := NewItem(id, "   ", price, "Chocolate", ""); err == nil {
			t.Fatal("expected error for blank name")
		}
	})

	t.Run("rejects zero price", func(t *testing.T) {
		if _, err := NewItem(id, "Chocolate Cake", decimal.Zero, "Chocolate", ""); err == nil {
			t.Fatal("expected error for zero price")
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		if _, err := NewItem(id, "Chocolate Cake", decimal.NewFromInt(-1), "Chocolate", ""); err == nil {
			t.Fatal("expected error for negative price")
		}
	})
}
