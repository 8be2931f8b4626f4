// Package memory provides an in-memory OrderRepository. It is the reference
// implementation of the repository contract and the test double used by
// application-layer tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	ordersdomain "github.com/ghuser/cakeshop/services/orders/domain"
	"github.com/ghuser/cakeshop/services/orders/domain/models"
)

// OrderRepository is a concurrency-safe in-memory implementation of
// repositories.OrderRepository. A single mutex is the serialization point for
// status transitions, mirroring the row lock the Postgres implementation takes.
type OrderRepository struct {
	mu      sync.RWMutex
	orders  map[uuid.UUID]models.Order
	nextSeq int64
}

// NewOrderRepository returns an empty in-memory repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[uuid.UUID]models.Order)}
}

// Create persists a new order and assigns its insertion sequence.
func (r *OrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; ok {
		return fmt.Errorf("%w: duplicate order id %s", ordersdomain.ErrStorageUnavailable, order.ID)
	}
	r.nextSeq++
	order.Seq = r.nextSeq
	r.orders[order.ID] = *order
	return nil
}

// SetCreatedAtForTest rewrites an order's CreatedAt without touching its
// sequence number, so tests can construct timestamp ties.
func (r *OrderRepository) SetCreatedAtForTest(id uuid.UUID, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return ordersdomain.ErrOrderNotFound
	}
	order.CreatedAt = ts
	r.orders[id] = order
	return nil
}

// Get retrieves an order by ID. Returns ErrOrderNotFound if absent.
func (r *OrderRepository) Get(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ordersdomain.ErrOrderNotFound
	}
	return &order, nil
}

// ListByUser retrieves a user's orders newest-first. limit <= 0 means no limit.
func (r *OrderRepository) ListByUser(_ context.Context, userID string, limit int) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := r.collect(func(o models.Order) bool { return o.UserID == userID })
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// ListByItem retrieves all orders referencing the item, newest-first.
func (r *OrderRepository) ListByItem(_ context.Context, itemID string) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o models.Order) bool { return o.ItemID == itemID }), nil
}

// ListByUserAndItem retrieves a user's orders for one item, newest-first.
func (r *OrderRepository) ListByUserAndItem(_ context.Context, userID, itemID string) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o models.Order) bool { return o.UserID == userID && o.ItemID == itemID }), nil
}

// UpdateStatus atomically transitions an order to next, validating against the
// stored status under the lock. The store is unchanged on an illegal transition.
func (r *OrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, next models.Status) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ordersdomain.ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ordersdomain.ErrInvalidStatusTransition, order.Status, next)
	}
	order.Status = next
	r.orders[id] = order
	return &order, nil
}

// collect returns matching orders sorted created_at descending with insertion
// sequence descending as the tie-break. Callers must hold at least a read lock.
func (r *OrderRepository) collect(match func(models.Order) bool) []*models.Order {
	var out []*models.Order
	for _, order := range r.orders {
		if match(order) {
			order := order
			out = append(out, &order)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Seq > out[j].Seq
	})
	return out
}
