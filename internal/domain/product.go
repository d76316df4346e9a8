package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product belongs to the catalog; the cart core references it and never
// mutates it.
type Product struct {
	ID          uuid.UUID
	Title       string
	Description string
	Slug        string
	Inventory   int32
	Price       Money

	CreatedAt time.Time
	UpdatedAt time.Time
}
