package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Item is the catalog aggregate: one purchasable cake or flavour.
//
// IDs are human-readable slugs ("chocolate", "red-velvet") chosen by the
// administrator at creation time and immutable afterwards — orders reference
// them forever. Items are never deleted; order history stores name and price
// snapshots, so catalog edits cannot corrupt past orders.
type Item struct {
	ID          ItemID
	Name        string
	UnitPrice   decimal.Decimal
	Flavour     string
	Description string
	CreatedAt   time.Time
}

// NewItem constructs a valid Item or returns an error describing the first
// violated constraint.
func NewItem(id ItemID, name string, unitPrice decimal.Decimal, flavour, description string) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("item name must not be blank")
	}
	if len(name) > maxItemNameLength {
		return nil, fmt.Errorf("item name must not exceed %d characters", maxItemNameLength)
	}
	if !unitPrice.IsPositive() {
		return nil, fmt.Errorf("unit price must be greater than zero, got %s", unitPrice)
	}
	return &Item{
		ID:          id,
		Name:        name,
		UnitPrice:   unitPrice,
		Flavour:     flavour,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

const maxItemNameLength = 255

// ItemID is a value object representing a valid catalog item slug.
type ItemID string

const (
	minItemIDLength = 1
	maxItemIDLength = 64
)

var itemIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// NewItemID constructs a valid ItemID or returns an error if constraints are violated.
// Slugs are lowercase alphanumeric segments joined by single hyphens.
func NewItemID(s string) (ItemID, error) {
	if len(s) < minItemIDLength {
		return "", fmt.Errorf("item id must be at least %d character", minItemIDLength)
	}
	if len(s) > maxItemIDLength {
		return "", fmt.Errorf("item id must not exceed %d characters", maxItemIDLength)
	}
	if !itemIDPattern.MatchString(s) {
		return "", fmt.Errorf("item id must be a lowercase slug, got %q", s)
	}
	return ItemID(s), nil
}

// String returns the underlying string value.
func (id ItemID) String() string {
	return string(id)
}
