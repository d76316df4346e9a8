package domain

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("cart item not found")

	// ErrDuplicateItem is the store signalling that the unique
	// (cart_id, product_id) pair already exists.
	ErrDuplicateItem = errors.New("cart item already exists")

	// ErrConflict is a transient storage conflict; callers retry a bounded
	// number of times before surfacing it.
	ErrConflict = errors.New("storage conflict")

	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
