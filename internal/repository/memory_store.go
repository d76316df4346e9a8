package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/cart/internal/domain"
	"github.com/storefront/cart/internal/port"
)

type pairKey struct {
	cartID    uuid.UUID
	productID uuid.UUID
}

// MemoryCartItemStore keeps cart lines in process memory. A single mutex makes
// every operation atomic, which satisfies the same merge contract as the
// Postgres upsert. Used by unit tests and local runs without a database.
type MemoryCartItemStore struct {
	mu    sync.Mutex
	items map[pairKey]domain.CartItem
	byID  map[uuid.UUID]pairKey
	order map[uuid.UUID]int
	seq   int
}

func NewMemoryCartItemStore() *MemoryCartItemStore {
	return &MemoryCartItemStore{
		items: make(map[pairKey]domain.CartItem),
		byID:  make(map[uuid.UUID]pairKey),
		order: make(map[uuid.UUID]int),
	}
}

var _ port.CartItemStore = (*MemoryCartItemStore)(nil)

func (s *MemoryCartItemStore) FindByCartAndProduct(_ context.Context, cartID, productID uuid.UUID) (domain.CartItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[pairKey{cartID, productID}]
	return item, ok, nil
}

func (s *MemoryCartItemStore) Insert(_ context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{cartID, productID}
	if _, ok := s.items[key]; ok {
		return domain.CartItem{}, domain.ErrDuplicateItem
	}

	return s.insertLocked(key, quantity), nil
}

func (s *MemoryCartItemStore) AddOrIncrement(_ context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{cartID, productID}
	if existing, ok := s.items[key]; ok {
		existing.Quantity += quantity
		existing.UpdatedAt = time.Now()
		s.items[key] = existing
		return existing, nil
	}

	return s.insertLocked(key, quantity), nil
}

func (s *MemoryCartItemStore) UpdateQuantity(_ context.Context, itemID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.byID[itemID]
	if !ok {
		return domain.CartItem{}, domain.ErrItemNotFound
	}

	item := s.items[key]
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	s.items[key] = item

	return item, nil
}

func (s *MemoryCartItemStore) Delete(_ context.Context, itemID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.byID[itemID]
	if !ok {
		return false, nil
	}

	delete(s.items, key)
	delete(s.byID, itemID)
	delete(s.order, itemID)

	return true, nil
}

func (s *MemoryCartItemStore) ListByCart(_ context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []domain.CartItem
	for key, item := range s.items {
		if key.cartID == cartID {
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return s.order[items[i].ID] < s.order[items[j].ID]
	})

	return items, nil
}

func (s *MemoryCartItemStore) insertLocked(key pairKey, quantity int32) domain.CartItem {
	now := time.Now()
	item := domain.CartItem{
		ID:        uuid.New(),
		CartID:    key.cartID,
		ProductID: key.productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.items[key] = item
	s.byID[item.ID] = key
	s.seq++
	s.order[item.ID] = s.seq

	return item
}
