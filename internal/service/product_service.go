package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/cart/internal/domain"
	"github.com/storefront/cart/internal/port"
)

// ProductService exposes catalog reads with the tax-inclusive display price
// computed fresh on every call.
type ProductService interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, domain.Money, error)
}

type productService struct {
	catalog port.Catalog
	pricer  *Pricer
}

func NewProductService(catalog port.Catalog, pricer *Pricer) ProductService {
	return &productService{catalog: catalog, pricer: pricer}
}

func (s *productService) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, domain.Money, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, domain.Money{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	return product, s.pricer.DisplayPriceWithTax(product), nil
}
