package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for the orders bounded context.
const (
	// TopicOrderPlaced is published when an order is created.
	TopicOrderPlaced = "order.placed"

	// TopicOrderStatusChanged is published on every successful status transition.
	TopicOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent is published after a new order is persisted.
type OrderPlacedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	OrderID    uuid.UUID `json:"order_id"`
	UserID     string    `json:"user_id"`
	ItemID     string    `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `json:"quantity"`
	TotalPrice string    `json:"total_price"` // decimal string, e.g. "3200"
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderStatusChangedEvent is published after a status transition commits.
type OrderStatusChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	OrderID    uuid.UUID `json:"order_id"`
	UserID     string    `json:"user_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}
