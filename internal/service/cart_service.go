package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/cart/internal/domain"
	"github.com/storefront/cart/internal/events"
	"github.com/storefront/cart/internal/platform/metrics"
	"github.com/storefront/cart/internal/port"
	"go.uber.org/zap"
)

const (
	defaultMergeRetries = 3
	retryBackoff        = 10 * time.Millisecond
)

// CartService is the mutation side of the cart: merge-adds, quantity
// overwrites and removals.
type CartService interface {
	CreateCart(ctx context.Context) (domain.Cart, error)
	AddToCart(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error)
	UpdateQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error)
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error
}

type cartService struct {
	items     port.CartItemStore
	carts     port.CartStore
	catalog   port.Catalog
	publisher port.Publisher
	metrics   *metrics.Manager
	logger    *zap.Logger
	retries   int
}

func NewCartService(
	items port.CartItemStore,
	carts port.CartStore,
	catalog port.Catalog,
	publisher port.Publisher,
	m *metrics.Manager,
	logger *zap.Logger,
	retries int,
) CartService {
	if retries <= 0 {
		retries = defaultMergeRetries
	}

	return &cartService{
		items:     items,
		carts:     carts,
		catalog:   catalog,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		retries:   retries,
	}
}

func (s *cartService) CreateCart(ctx context.Context) (domain.Cart, error) {
	cart, err := s.carts.Create(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Create: %w", err)
	}

	return cart, nil
}

// AddToCart merges the requested quantity into the cart's line for the
// product: insert when absent, increment in place when present. Validation
// and the catalog check happen before the store is touched.
func (s *cartService) AddToCart(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	if err := s.requireCart(ctx, cartID); err != nil {
		return domain.CartItem{}, err
	}

	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.CartItem{}, domain.ErrProductNotFound
		}
		return domain.CartItem{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	item, err := s.withRetry(ctx, func() (domain.CartItem, error) {
		return s.items.AddOrIncrement(ctx, cartID, productID, quantity)
	})
	if err != nil {
		return domain.CartItem{}, err
	}

	s.metrics.ItemsAddedTotal.Inc()
	s.publish(ctx, events.SubjectItemAdded, events.ItemEvent{
		CartID:    cartID,
		ProductID: productID,
		ItemID:    item.ID,
		Quantity:  item.Quantity,
	})

	return item, nil
}

// UpdateQuantity overwrites the line's quantity. There is no remove-by-zero
// path here, removal is its own operation.
func (s *cartService) UpdateQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	item, found, err := s.items.FindByCartAndProduct(ctx, cartID, productID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("items.FindByCartAndProduct: %w", err)
	}
	if !found {
		return domain.CartItem{}, domain.ErrItemNotFound
	}

	updated, err := s.withRetry(ctx, func() (domain.CartItem, error) {
		return s.items.UpdateQuantity(ctx, item.ID, quantity)
	})
	if err != nil {
		return domain.CartItem{}, err
	}

	s.metrics.ItemsUpdatedTotal.Inc()
	s.publish(ctx, events.SubjectItemUpdated, events.ItemEvent{
		CartID:    cartID,
		ProductID: productID,
		ItemID:    updated.ID,
		Quantity:  updated.Quantity,
	})

	return updated, nil
}

// RemoveItem deletes the line if present. Removing an absent line is a
// successful no-op.
func (s *cartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	item, found, err := s.items.FindByCartAndProduct(ctx, cartID, productID)
	if err != nil {
		return fmt.Errorf("items.FindByCartAndProduct: %w", err)
	}
	if !found {
		return nil
	}

	deleted, err := s.items.Delete(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("items.Delete: %w", err)
	}
	if !deleted {
		// lost a race to a concurrent removal, still a success
		return nil
	}

	s.metrics.ItemsRemovedTotal.Inc()
	s.publish(ctx, events.SubjectItemRemoved, events.ItemEvent{
		CartID:    cartID,
		ProductID: productID,
		ItemID:    item.ID,
	})

	return nil
}

func (s *cartService) requireCart(ctx context.Context, cartID uuid.UUID) error {
	exists, err := s.carts.Exists(ctx, cartID)
	if err != nil {
		return fmt.Errorf("carts.Exists: %w", err)
	}
	if !exists {
		return domain.ErrCartNotFound
	}

	return nil
}

func (s *cartService) withRetry(ctx context.Context, fn func() (domain.CartItem, error)) (domain.CartItem, error) {
	var lastErr error

	for attempt := 0; attempt < s.retries; attempt++ {
		item, err := fn()
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return domain.CartItem{}, err
		}

		lastErr = err
		s.metrics.MergeRetriesTotal.Inc()
		s.logger.Warn("storage conflict, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return domain.CartItem{}, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}

	return domain.CartItem{}, fmt.Errorf("retries exhausted: %w", lastErr)
}

func (s *cartService) publish(ctx context.Context, subject string, event events.ItemEvent) {
	if err := s.publisher.Publish(ctx, subject, event); err != nil {
		s.logger.Warn("failed to publish cart event",
			zap.String("subject", subject),
			zap.Error(err))
	}
}
