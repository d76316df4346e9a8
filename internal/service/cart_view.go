package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/cart/internal/domain"
	"github.com/storefront/cart/internal/port"
	"golang.org/x/sync/errgroup"
)

const productFetchConcurrency = 8

// CartViewer assembles the read-facing cart snapshot: stored lines joined
// with live product data plus totals. It holds no state of its own.
type CartViewer interface {
	GetCart(ctx context.Context, cartID uuid.UUID) (domain.CartView, error)
}

type cartViewer struct {
	items   port.CartItemStore
	carts   port.CartStore
	catalog port.Catalog
	pricer  *Pricer
}

func NewCartViewer(items port.CartItemStore, carts port.CartStore, catalog port.Catalog, pricer *Pricer) CartViewer {
	return &cartViewer{
		items:   items,
		carts:   carts,
		catalog: catalog,
		pricer:  pricer,
	}
}

func (v *cartViewer) GetCart(ctx context.Context, cartID uuid.UUID) (domain.CartView, error) {
	exists, err := v.carts.Exists(ctx, cartID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("carts.Exists: %w", err)
	}
	if !exists {
		return domain.CartView{}, domain.ErrCartNotFound
	}

	items, err := v.items.ListByCart(ctx, cartID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("items.ListByCart: %w", err)
	}

	lines := make([]domain.CartLine, len(items))

	// Product snapshots are independent point lookups, fetch them
	// concurrently while keeping the store's ordering.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(productFetchConcurrency)

	for i, item := range items {
		g.Go(func() error {
			line, err := v.buildLine(gctx, item)
			if err != nil {
				return err
			}
			lines[i] = line
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.CartView{}, err
	}

	return domain.CartView{
		CartID: cartID,
		Lines:  lines,
		Total:  v.pricer.CartTotal(lines),
	}, nil
}

// buildLine flags lines whose product has left the catalog instead of
// failing the whole read; such lines carry a zero total.
func (v *cartViewer) buildLine(ctx context.Context, item domain.CartItem) (domain.CartLine, error) {
	product, err := v.catalog.GetProduct(ctx, item.ProductID)
	if errors.Is(err, domain.ErrProductNotFound) {
		zero := domain.Money{Amount: decimal.Zero, Currency: v.pricer.currency}
		return domain.CartLine{
			Item:       item,
			UnitPrice:  zero,
			LineTotal:  zero,
			StalePrice: true,
		}, nil
	}
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	return domain.CartLine{
		Item:      item,
		Title:     product.Title,
		UnitPrice: product.Price,
		LineTotal: v.pricer.LineTotal(item, product.Price),
	}, nil
}
