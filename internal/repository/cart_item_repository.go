package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/storefront/cart/internal/domain"
	"github.com/storefront/cart/internal/port"
)

const cartItemColumns = "id, cart_id, product_id, quantity, created_at, updated_at"

type cartItemStore struct {
	pool *pgxpool.Pool
}

func NewCartItemStore(pool *pgxpool.Pool) port.CartItemStore {
	return &cartItemStore{pool: pool}
}

func (s *cartItemStore) FindByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (domain.CartItem, bool, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+cartItemColumns+" FROM cart_items WHERE cart_id = $1 AND product_id = $2",
		cartID, productID)

	item, err := scanCartItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, false, nil
	}
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("scanCartItem: %w", err)
	}

	return item, true, nil
}

func (s *cartItemStore) Insert(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	row := s.pool.QueryRow(ctx,
		"INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING "+cartItemColumns,
		cartID, productID, quantity)

	item, err := scanCartItem(row)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("scanCartItem: %w", mapPgError(err))
	}

	return item, nil
}

// AddOrIncrement is a single conditional upsert, so two concurrent merges on
// the same (cart_id, product_id) pair serialize inside Postgres and end up
// summed, never lost.
func (s *cartItemStore) AddOrIncrement(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (cart_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
		 RETURNING `+cartItemColumns,
		cartID, productID, quantity)

	item, err := scanCartItem(row)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("scanCartItem: %w", mapPgError(err))
	}

	return item, nil
}

func (s *cartItemStore) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	row := s.pool.QueryRow(ctx,
		"UPDATE cart_items SET quantity = $2, updated_at = now() WHERE id = $1 RETURNING "+cartItemColumns,
		itemID, quantity)

	item, err := scanCartItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, domain.ErrItemNotFound
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("scanCartItem: %w", mapPgError(err))
	}

	return item, nil
}

func (s *cartItemStore) Delete(ctx context.Context, itemID uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM cart_items WHERE id = $1", itemID)
	if err != nil {
		return false, fmt.Errorf("pool.Exec: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *cartItemStore) ListByCart(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+cartItemColumns+" FROM cart_items WHERE cart_id = $1 ORDER BY created_at, id",
		cartID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanCartItem: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}

func scanCartItem(row pgx.Row) (domain.CartItem, error) {
	var item domain.CartItem

	err := row.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.CartItem{}, err
	}

	return item, nil
}
