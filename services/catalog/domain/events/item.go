package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicItemCreated is the Watermill topic published when a catalog item is created.
const TopicItemCreated = "catalog.item.created"

// ItemCreatedEvent is published after a new catalog item is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated).
type ItemCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID      string    `json:"item_id"`
	Name        string    `json:"name"`
	UnitPrice   string    `json:"unit_price"` // decimal string, e.g. "1500"
	Flavour     string    `json:"flavour"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}
