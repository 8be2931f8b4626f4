package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ghuser/cakeshop/pkg/database"
	"github.com/ghuser/cakeshop/pkg/events"
	catalogdomain "github.com/ghuser/cakeshop/services/catalog/domain"
	domainevents "github.com/ghuser/cakeshop/services/catalog/domain/events"
	"github.com/ghuser/cakeshop/services/catalog/domain/models"
	"github.com/ghuser/cakeshop/services/catalog/domain/repositories"
)

// ItemStore implements repositories.ItemStore against PostgreSQL.
type ItemStore struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemStore returns an ItemStore backed by the given connection pool and
// event bus. The bus is used to publish ItemCreatedEvents after a successful save.
func NewItemStore(db *database.Database, bus *events.EventBus) *ItemStore {
	return &ItemStore{db: db, bus: bus}
}

// Save persists a new item and publishes an ItemCreatedEvent within the same
// transaction. Returns ErrItemAlreadyExists on unique constraint violations.
func (s *ItemStore) Save(ctx context.Context, item *models.Item) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
			INSERT INTO catalog_items (id, name, unit_price, flavour, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := tx.ExecContext(ctx, q,
			item.ID.String(),
			item.Name,
			item.UnitPrice,
			item.Flavour,
			item.Description,
			item.CreatedAt,
		); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return catalogdomain.ErrItemAlreadyExists
			}
			return fmt.Errorf("insert catalog item: %w", err)
		}

		if s.bus != nil {
			if err := s.publishCreated(tx, item); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
}

// GetItem retrieves an item by slug. Returns ErrItemNotFound if absent.
func (s *ItemStore) GetItem(ctx context.Context, id models.ItemID) (*models.Item, error) {
	const q = `
		SELECT id, name, unit_price, flavour, description, created_at
		FROM catalog_items WHERE id = $1`
	item, err := scanItem(s.db.DB().QueryRowContext(ctx, q, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query catalog item: %w", err)
	}
	return item, nil
}

// ListItems retrieves items matching the filter.
func (s *ItemStore) ListItems(ctx context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	const q = `
		SELECT id, name, unit_price, flavour, description, created_at
		FROM catalog_items
		WHERE ($1 = '' OR flavour = $1)
		ORDER BY name`
	rows, err := s.db.DB().QueryContext(ctx, q, filter.Flavour)
	if err != nil {
		return nil, fmt.Errorf("query catalog items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog items: %w", err)
	}
	return items, nil
}

// Update persists administrator edits to an existing item.
func (s *ItemStore) Update(ctx context.Context, item *models.Item) error {
	const q = `
		UPDATE catalog_items
		SET name = $2, unit_price = $3, flavour = $4, description = $5
		WHERE id = $1`
	res, err := s.db.DB().ExecContext(ctx, q,
		item.ID.String(),
		item.Name,
		item.UnitPrice,
		item.Flavour,
		item.Description,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update catalog item rows: %w", err)
	}
	if n == 0 {
		return catalogdomain.ErrItemNotFound
	}
	return nil
}

func (s *ItemStore) publishCreated(tx *sql.Tx, item *models.Item) error {
	event := domainevents.ItemCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ItemID:      item.ID.String(),
		Name:        item.Name,
		UnitPrice:   item.UnitPrice.String(),
		Flavour:     item.Flavour,
		Description: item.Description,
		OccurredAt:  item.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := s.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicItemCreated, msg)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem maps a catalog_items row to a domain Item. Required fields that
// come back empty indicate a corrupted row and are reported as errors rather
// than silently defaulted.
func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var id string
	var price decimal.Decimal
	if err := row.Scan(&id, &item.Name, &price, &item.Flavour, &item.Description, &item.CreatedAt); err != nil {
		return nil, err
	}
	if id == "" || item.Name == "" {
		return nil, fmt.Errorf("corrupt catalog row: missing id or name")
	}
	item.ID = models.ItemID(id)
	item.UnitPrice = price
	return &item, nil
}
