package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordersdomain "github.com/ghuser/cakeshop/services/orders/domain"
	"github.com/ghuser/cakeshop/services/orders/domain/models"
)

func newOrder(t *testing.T, userID, itemID string) *models.Order {
	t.Helper()
	o, err := models.NewOrder(userID, itemID, itemID+" cake", decimal.NewFromInt(1500), 1, "Westlands", decimal.NewFromInt(200))
	if err != nil {
		t.Fatalf("new order: %v", err)
	}
	return o
}

func TestOrderRepository_CreateAssignsSeq(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	a := newOrder(t, "u1", "chocolate")
	b := newOrder(t, "u1", "vanilla")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if a.Seq == 0 || b.Seq == 0 {
		t.Fatal("expected non-zero sequences")
	}
	if b.Seq <= a.Seq {
		t.Fatalf("expected b.Seq > a.Seq, got %d <= %d", b.Seq, a.Seq)
	}
}

func TestOrderRepository_CreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	order := newOrder(t, "u1", "chocolate")

	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ItemName != order.ItemName ||
		!got.UnitPrice.Equal(order.UnitPrice) ||
		got.Quantity != order.Quantity ||
		!got.TotalPrice().Equal(order.TotalPrice()) {
		t.Fatalf("snapshot fields differ after round-trip: got %+v want %+v", got, order)
	}
}

func TestOrderRepository_GetMissing(t *testing.T) {
	repo := NewOrderRepository()
	_, err := repo.Get(context.Background(), uuid.New())
	if !errors.Is(err, ordersdomain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListByUser_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	older := newOrder(t, "u1", "chocolate")
	older.CreatedAt = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	newer := newOrder(t, "u1", "vanilla")
	newer.CreatedAt = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	other := newOrder(t, "u2", "chocolate")

	for _, o := range []*models.Order{older, newer, other} {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	orders, err := repo.ListByUser(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != newer.ID || orders[1].ID != older.ID {
		t.Fatal("expected newest-first ordering")
	}
}

func TestOrderRepository_ListByUser_TieBreakOnSeq(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	first := newOrder(t, "u1", "chocolate")
	first.CreatedAt = ts
	second := newOrder(t, "u1", "vanilla")
	second.CreatedAt = ts

	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	orders, err := repo.ListByUser(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	// Equal timestamps: the later insert wins.
	if orders[0].ID != second.ID {
		t.Fatal("expected the later-inserted order to win the tie-break")
	}
}

func TestOrderRepository_ListByItem(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	for _, o := range []*models.Order{
		newOrder(t, "u1", "chocolate"),
		newOrder(t, "u2", "chocolate"),
		newOrder(t, "u1", "vanilla"),
	} {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	orders, err := repo.ListByItem(ctx, "chocolate")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 chocolate orders, got %d", len(orders))
	}
}

func TestOrderRepository_ListByUserAndItem_EmptyResult(t *testing.T) {
	repo := NewOrderRepository()
	orders, err := repo.ListByUserAndItem(context.Background(), "u1", "chocolate")
	if err != nil {
		t.Fatalf("expected no error for empty result, got %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty slice, got %d orders", len(orders))
	}
}

func TestOrderRepository_UpdateStatus_LegalPath(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	order := newOrder(t, "u1", "chocolate")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, order.ID, models.StatusOutForDelivery)
	if err != nil {
		t.Fatalf("to out-for-delivery: %v", err)
	}
	if updated.Status != models.StatusOutForDelivery {
		t.Fatalf("expected Out for Delivery, got %s", updated.Status)
	}

	updated, err = repo.UpdateStatus(ctx, order.ID, models.StatusDelivered)
	if err != nil {
		t.Fatalf("to delivered: %v", err)
	}
	if updated.Status != models.StatusDelivered {
		t.Fatalf("expected Delivered, got %s", updated.Status)
	}
}

func TestOrderRepository_UpdateStatus_IllegalTransitionLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	order := newOrder(t, "u1", "chocolate")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, order.ID, models.StatusOutForDelivery); err != nil {
		t.Fatalf("to out-for-delivery: %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, order.ID, models.StatusDelivered); err != nil {
		t.Fatalf("to delivered: %v", err)
	}

	_, err := repo.UpdateStatus(ctx, order.ID, models.StatusPending)
	if !errors.Is(err, ordersdomain.ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}

	got, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusDelivered {
		t.Fatalf("store changed on illegal transition: %s", got.Status)
	}
}

func TestOrderRepository_UpdateStatus_Missing(t *testing.T) {
	repo := NewOrderRepository()
	_, err := repo.UpdateStatus(context.Background(), uuid.New(), models.StatusCancelled)
	if !errors.Is(err, ordersdomain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
