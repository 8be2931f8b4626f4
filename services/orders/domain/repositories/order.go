package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/cakeshop/services/orders/domain/models"
)

// OrderRepository is the persistence interface for the Order aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// List queries return orders newest-first: created_at descending, with the
// repository-assigned insertion sequence as the tie-break, so "latest order"
// is deterministic even when timestamps collide.
type OrderRepository interface {
	// Create persists a new order and assigns its insertion sequence.
	// Returns ErrStorageUnavailable (wrapped) when the store cannot be reached.
	Create(ctx context.Context, order *models.Order) error

	// Get retrieves an order by ID. Returns ErrOrderNotFound if absent.
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)

	// ListByUser retrieves a user's orders newest-first. limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Order, error)

	// ListByItem retrieves all orders referencing the item, newest-first.
	// Used for per-flavour tracking views.
	ListByItem(ctx context.Context, itemID string) ([]*models.Order, error)

	// ListByUserAndItem retrieves a user's orders for one item, newest-first.
	ListByUserAndItem(ctx context.Context, userID, itemID string) ([]*models.Order, error)

	// UpdateStatus atomically transitions an order to next. The transition is
	// validated against the status stored at the moment of update, never a
	// caller-cached copy; concurrent readers observe either the old or the new
	// status, never a partial write. Returns the updated order,
	// ErrOrderNotFound, or ErrInvalidStatusTransition (store unchanged).
	UpdateStatus(ctx context.Context, id uuid.UUID, next models.Status) (*models.Order, error)
}
