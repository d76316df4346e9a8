package domain

import (
	"time"

	"github.com/google/uuid"
)

// Cart is intentionally thin: the core only needs to know a cart id is valid.
// Creation and expiry are driven from outside.
type Cart struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

// CartItem is one line of a cart. The (CartID, ProductID) pair is unique and
// quantity is always >= 1; a line whose quantity would drop to zero is
// deleted instead of stored.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine joins a stored item with its current product snapshot.
// StalePrice marks lines whose product has since left the catalog;
// such lines carry a zero total and are excluded from the grand total.
type CartLine struct {
	Item       CartItem
	Title      string
	UnitPrice  Money
	LineTotal  Money
	StalePrice bool
}

type CartView struct {
	CartID uuid.UUID
	Lines  []CartLine
	Total  Money
}
