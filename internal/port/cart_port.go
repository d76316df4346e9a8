package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/cart/internal/domain"
)

// CartItemStore persists cart lines keyed by the unique (cart_id, product_id)
// pair. Implementations must make AddOrIncrement atomic with respect to
// concurrent calls on the same pair: two concurrent adds of q1 and q2 to an
// absent line converge to a single line with quantity q1+q2.
type CartItemStore interface {
	FindByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (domain.CartItem, bool, error)

	// Insert fails with domain.ErrDuplicateItem when the pair already exists.
	Insert(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error)

	// AddOrIncrement is the merge primitive: insert the line with the given
	// quantity, or add it to the existing quantity in place. The stored item
	// id is preserved across increments.
	AddOrIncrement(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error)

	// UpdateQuantity overwrites the quantity of an existing line.
	// Fails with domain.ErrItemNotFound when the item is gone.
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (domain.CartItem, error)

	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, itemID uuid.UUID) (bool, error)

	// ListByCart returns the cart's lines ordered by creation time.
	ListByCart(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error)
}

// CartStore tracks which cart ids are valid. Deleting a cart cascades to its
// items at the storage level.
type CartStore interface {
	Create(ctx context.Context) (domain.Cart, error)
	Exists(ctx context.Context, cartID uuid.UUID) (bool, error)
	Delete(ctx context.Context, cartID uuid.UUID) (bool, error)
}
