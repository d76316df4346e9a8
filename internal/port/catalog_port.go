package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/cart/internal/domain"
)

// Catalog is the external source of truth for product existence and price.
// The cart core only reads from it; CreateProduct exists for seeding and
// tests.
type Catalog interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
}
