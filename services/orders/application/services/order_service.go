package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogmodels "github.com/ghuser/cakeshop/services/catalog/domain/models"
	ordersdomain "github.com/ghuser/cakeshop/services/orders/domain"
	"github.com/ghuser/cakeshop/services/orders/domain/models"
	"github.com/ghuser/cakeshop/services/orders/domain/repositories"
)

// ItemResolver is the view of the catalog the order core needs: price and
// name lookup for the item being ordered. The catalog application service
// satisfies it; tests use the in-memory catalog store behind it.
type ItemResolver interface {
	GetItem(ctx context.Context, id catalogmodels.ItemID) (*catalogmodels.Item, error)
}

// notAvailable is the dashboard placeholder when a user has no orders yet.
const notAvailable = "Not Available"

// OrderService is the order lifecycle core: it validates and creates orders,
// snapshots catalog pricing, enforces the delivery status state machine, and
// answers tracking queries. All persistence goes through OrderRepository and
// all catalog lookups through ItemResolver — no hidden global state.
type OrderService struct {
	repo       repositories.OrderRepository
	catalog    ItemResolver
	defaultFee decimal.Decimal
}

// NewOrderService returns an OrderService wired with the given repository,
// catalog resolver, and default delivery fee.
func NewOrderService(repo repositories.OrderRepository, catalog ItemResolver, defaultFee decimal.Decimal) *OrderService {
	return &OrderService{repo: repo, catalog: catalog, defaultFee: defaultFee}
}

// PlaceOrder validates the request, snapshots the item's name and unit price,
// and persists a Pending order. deliveryFee nil applies the configured default.
//
// Validation is fail-fast: no write happens unless every precondition holds.
// A repository failure is wrapped in ErrOrderCreationFailed and returned
// without retry; the caller decides on retry/backoff.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, itemID string, quantity int, deliveryAddress string, deliveryFee *decimal.Decimal) (*models.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("place order: user id must not be empty")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: got %d", ordersdomain.ErrInvalidQuantity, quantity)
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		return nil, ordersdomain.ErrInvalidAddress
	}

	item, err := s.catalog.GetItem(ctx, catalogmodels.ItemID(itemID))
	if err != nil {
		// catalog.ErrItemNotFound passes through for errors.Is matching.
		return nil, fmt.Errorf("resolve item %q: %w", itemID, err)
	}

	fee := s.defaultFee
	if deliveryFee != nil {
		fee = *deliveryFee
	}

	order, err := models.NewOrder(userID, itemID, item.Name, item.UnitPrice, quantity, deliveryAddress, fee)
	if err != nil {
		return nil, fmt.Errorf("new order: %w", err)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %w", ordersdomain.ErrOrderCreationFailed, err)
	}

	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// LatestOrderForUser returns the user's most recent order. Ties on CreatedAt
// resolve to the later insert (repository sequence), so the result is stable
// under concurrent reads. Returns ErrNoOrders when the user has none.
func (s *OrderService) LatestOrderForUser(ctx context.Context, userID string) (*models.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID, 1)
	if err != nil {
		return nil, fmt.Errorf("latest order: %w", err)
	}
	if len(orders) == 0 {
		return nil, ordersdomain.ErrNoOrders
	}
	return orders[0], nil
}

// ListOrdersForUser returns all of the user's orders, newest-first.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID string) ([]*models.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListOrdersForUserAndItem returns the user's orders for one item,
// newest-first. An empty result is an empty slice, not an error.
func (s *OrderService) ListOrdersForUserAndItem(ctx context.Context, userID, itemID string) ([]*models.Order, error) {
	orders, err := s.repo.ListByUserAndItem(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("list orders by item: %w", err)
	}
	return orders, nil
}

// AdvanceStatus transitions an order through the delivery state machine.
// The repository validates the transition against the stored status inside
// its atomic update — it is the sole serialization point, so two racing
// administrators cannot both apply a transition from the same stale status.
// Authorization (administrator-only) is enforced by the calling layer.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, next models.Status) (*models.Order, error) {
	order, err := s.repo.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return nil, fmt.Errorf("advance status: %w", err)
	}
	return order, nil
}

// DashboardSummary is the tracking projection for one user's dashboard.
type DashboardSummary struct {
	LatestOrder   *models.Order // nil when the user has no orders
	DisplayName   string
	DisplayStatus string
}

// Dashboard builds the tracking projection: the user's latest order with
// display fallbacks when none exists. Recomputed on every call — per-user
// order volume is small, so no cache sits in front of it.
func (s *OrderService) Dashboard(ctx context.Context, userID string) (*DashboardSummary, error) {
	latest, err := s.LatestOrderForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ordersdomain.ErrNoOrders) {
			return &DashboardSummary{DisplayName: notAvailable, DisplayStatus: notAvailable}, nil
		}
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &DashboardSummary{
		LatestOrder:   latest,
		DisplayName:   latest.ItemName,
		DisplayStatus: latest.Status.String(),
	}, nil
}
