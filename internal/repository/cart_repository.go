package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/storefront/cart/internal/domain"
	"github.com/storefront/cart/internal/port"
)

type cartStore struct {
	pool *pgxpool.Pool
}

func NewCartStore(pool *pgxpool.Pool) port.CartStore {
	return &cartStore{pool: pool}
}

func (s *cartStore) Create(ctx context.Context) (domain.Cart, error) {
	var cart domain.Cart

	err := s.pool.QueryRow(ctx,
		"INSERT INTO carts DEFAULT VALUES RETURNING id, created_at").
		Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("pool.QueryRow: %w", err)
	}

	return cart, nil
}

func (s *cartStore) Exists(ctx context.Context, cartID uuid.UUID) (bool, error) {
	var exists bool

	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)", cartID).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pool.QueryRow: %w", err)
	}

	return exists, nil
}

// Delete removes the cart's items and the cart row in one transaction. The
// items delete duplicates the FK cascade on purpose: the cascade stays as the
// schema-level guarantee, the explicit statement keeps the intent visible.
func (s *cartStore) Delete(ctx context.Context, cartID uuid.UUID) (bool, error) {
	return withTx(ctx, s.pool, func(tx pgx.Tx) (bool, error) {
		if _, err := tx.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
			return false, fmt.Errorf("delete cart_items: %w", err)
		}

		tag, err := tx.Exec(ctx, "DELETE FROM carts WHERE id = $1", cartID)
		if err != nil {
			return false, fmt.Errorf("delete carts: %w", err)
		}

		return tag.RowsAffected() > 0, nil
	})
}
