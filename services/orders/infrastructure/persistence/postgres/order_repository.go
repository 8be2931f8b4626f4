package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/cakeshop/pkg/database"
	"github.com/ghuser/cakeshop/pkg/events"
	ordersdomain "github.com/ghuser/cakeshop/services/orders/domain"
	domainevents "github.com/ghuser/cakeshop/services/orders/domain/events"
	"github.com/ghuser/cakeshop/services/orders/domain/models"
)

const orderColumns = "id, seq, user_id, item_id, item_name, unit_price, quantity, delivery_address, delivery_fee, status, created_at"

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
//
// The seq column is a BIGSERIAL assigned on insert; list queries order by
// (created_at DESC, seq DESC) so equal timestamps resolve to the later insert.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository backed by the given connection
// pool and event bus. The bus publishes OrderPlaced and OrderStatusChanged
// events in the same transaction as the write.
func NewOrderRepository(db *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: db, bus: bus}
}

// Create persists a new order, assigns its insertion sequence, and publishes
// an OrderPlacedEvent within the same transaction.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
			INSERT INTO orders (id, user_id, item_id, item_name, unit_price, quantity, delivery_address, delivery_fee, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING seq`
		if err := tx.QueryRowContext(ctx, q,
			order.ID,
			order.UserID,
			order.ItemID,
			order.ItemName,
			order.UnitPrice,
			order.Quantity,
			order.DeliveryAddress,
			order.DeliveryFee,
			order.Status.String(),
			order.CreatedAt,
		).Scan(&order.Seq); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if r.bus != nil {
			if err := r.publishPlaced(tx, order); err != nil {
				return fmt.Errorf("publish order placed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ordersdomain.ErrStorageUnavailable, err)
	}
	return nil
}

// Get retrieves an order by ID. Returns ErrOrderNotFound if absent.
func (r *OrderRepository) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	q := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)
	order, err := scanOrder(r.db.DB().QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ordersdomain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: query order: %w", ordersdomain.ErrStorageUnavailable, err)
	}
	return order, nil
}

// ListByUser retrieves a user's orders newest-first. limit <= 0 means no limit.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Order, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC`, orderColumns)
	args := []any{userID}
	if limit > 0 {
		q += " LIMIT $2"
		args = append(args, limit)
	}
	return r.queryOrders(ctx, q, args...)
}

// ListByItem retrieves all orders referencing the item, newest-first.
func (r *OrderRepository) ListByItem(ctx context.Context, itemID string) ([]*models.Order, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE item_id = $1
		ORDER BY created_at DESC, seq DESC`, orderColumns)
	return r.queryOrders(ctx, q, itemID)
}

// ListByUserAndItem retrieves a user's orders for one item, newest-first.
func (r *OrderRepository) ListByUserAndItem(ctx context.Context, userID, itemID string) ([]*models.Order, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE user_id = $1 AND item_id = $2
		ORDER BY created_at DESC, seq DESC`, orderColumns)
	return r.queryOrders(ctx, q, userID, itemID)
}

// UpdateStatus atomically transitions an order to next. The stored status is
// re-read under a row lock and validated inside the transaction, so a racing
// administrator cannot apply a transition against a stale status. Publishes
// an OrderStatusChangedEvent in the same transaction.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, next models.Status) (*models.Order, error) {
	var updated *models.Order
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1 FOR UPDATE", orderColumns)
		order, err := scanOrder(tx.QueryRowContext(ctx, q, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ordersdomain.ErrOrderNotFound
			}
			return fmt.Errorf("%w: lock order: %w", ordersdomain.ErrStorageUnavailable, err)
		}

		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ordersdomain.ErrInvalidStatusTransition, order.Status, next)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE orders SET status = $2 WHERE id = $1",
			id, next.String(),
		); err != nil {
			return fmt.Errorf("%w: update order status: %w", ordersdomain.ErrStorageUnavailable, err)
		}

		if r.bus != nil {
			if err := r.publishStatusChanged(tx, order, next); err != nil {
				return fmt.Errorf("publish status changed: %w", err)
			}
		}

		order.Status = next
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, q string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query orders: %w", ordersdomain.ErrStorageUnavailable, err)
	}
	defer rows.Close() //nolint:errcheck

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan order: %w", ordersdomain.ErrStorageUnavailable, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate orders: %w", ordersdomain.ErrStorageUnavailable, err)
	}
	return orders, nil
}

func (r *OrderRepository) publishPlaced(tx *sql.Tx, order *models.Order) error {
	event := domainevents.OrderPlacedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    order.ID,
		UserID:     order.UserID,
		ItemID:     order.ItemID,
		ItemName:   order.ItemName,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice().String(),
		OccurredAt: order.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicOrderPlaced, event, event.EventID)
}

func (r *OrderRepository) publishStatusChanged(tx *sql.Tx, order *models.Order, next models.Status) error {
	event := domainevents.OrderStatusChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    order.ID,
		UserID:     order.UserID,
		OldStatus:  order.Status.String(),
		NewStatus:  next.String(),
		OccurredAt: time.Now().UTC(),
	}
	return r.publish(tx, domainevents.TopicOrderStatusChanged, event, event.EventID)
}

func (r *OrderRepository) publish(tx *sql.Tx, topic string, event any, eventID uuid.UUID) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrder maps an orders row to a domain Order with strict decoding:
// unknown status strings and blank required fields are errors, never silently
// defaulted, so data corruption surfaces instead of masquerading as defaults.
func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		order     models.Order
		unitPrice decimal.Decimal
		fee       decimal.Decimal
		status    string
	)
	if err := row.Scan(
		&order.ID,
		&order.Seq,
		&order.UserID,
		&order.ItemID,
		&order.ItemName,
		&unitPrice,
		&order.Quantity,
		&order.DeliveryAddress,
		&fee,
		&status,
		&order.CreatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("corrupt order row %s: %w", order.ID, err)
	}
	if order.UserID == "" || order.ItemID == "" {
		return nil, fmt.Errorf("corrupt order row %s: missing user_id or item_id", order.ID)
	}

	order.UnitPrice = unitPrice
	order.DeliveryFee = fee
	order.Status = parsed
	return &order, nil
}
