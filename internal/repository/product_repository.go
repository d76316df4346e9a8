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
	"golang.org/x/text/currency"
)

const productColumns = "id, title, description, slug, inventory, price_amount, price_currency, created_at, updated_at"

type catalog struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) port.Catalog {
	return &catalog{pool: pool}
}

func (c *catalog) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	row := c.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", productID)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}

	return product, nil
}

func (c *catalog) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Title == "" {
		return domain.Product{}, fmt.Errorf("title is empty")
	}
	if product.Price.Amount.IsNegative() {
		return domain.Product{}, fmt.Errorf("price amount is negative")
	}

	row := c.pool.QueryRow(ctx,
		`INSERT INTO products (title, description, slug, inventory, price_amount, price_currency)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+productColumns,
		product.Title, product.Description, product.Slug, product.Inventory,
		product.Price.Amount, product.Price.Currency.String())

	created, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("scanProduct: %w", mapPgError(err))
	}

	return created, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p            domain.Product
		currencyCode string
	)

	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Slug, &p.Inventory,
		&p.Price.Amount, &currencyCode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}
	p.Price.Currency = parsedCurrency

	return p, nil
}
