package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the core aggregate: one user's purchase of one catalog item.
//
// ItemName and UnitPrice are snapshots taken at creation time so later catalog
// edits never alter order history. Once created an order is immutable except
// for Status; the repository is the sole writer of status transitions.
//
// Seq is assigned by the repository on insert and increases monotonically.
// It breaks ties between orders sharing a CreatedAt timestamp so "latest
// order" queries are deterministic.
type Order struct {
	ID              uuid.UUID
	UserID          string // opaque identifier owned by the auth provider
	ItemID          string
	ItemName        string
	UnitPrice       decimal.Decimal
	Quantity        int
	DeliveryAddress string
	DeliveryFee     decimal.Decimal
	Status          Status
	CreatedAt       time.Time
	Seq             int64
}

// NewOrder constructs a valid Pending order with generated ID and current
// timestamp, or returns an error describing the first violated constraint.
// itemName and unitPrice are the catalog snapshot values.
func NewOrder(userID, itemID, itemName string, unitPrice decimal.Decimal, quantity int, deliveryAddress string, deliveryFee decimal.Decimal) (*Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id must not be empty")
	}
	if itemID == "" {
		return nil, fmt.Errorf("item id must not be empty")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		return nil, fmt.Errorf("delivery address must not be blank")
	}
	if !unitPrice.IsPositive() {
		return nil, fmt.Errorf("unit price snapshot must be greater than zero, got %s", unitPrice)
	}
	if deliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must not be negative, got %s", deliveryFee)
	}

	return &Order{
		ID:              uuid.New(),
		UserID:          userID,
		ItemID:          itemID,
		ItemName:        itemName,
		UnitPrice:       unitPrice,
		Quantity:        quantity,
		DeliveryAddress: deliveryAddress,
		DeliveryFee:     deliveryFee,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// TotalPrice is always derived: unitPrice*quantity + deliveryFee.
// It is never stored, so it cannot drift from its inputs.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity))).Add(o.DeliveryFee)
}
