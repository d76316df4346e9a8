package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/cart/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCartItemStore struct {
	mock.Mock
}

func (m *MockCartItemStore) FindByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (domain.CartItem, bool, error) {
	args := m.Called(ctx, cartID, productID)
	return args.Get(0).(domain.CartItem), args.Bool(1), args.Error(2)
}

func (m *MockCartItemStore) Insert(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Get(0).(domain.CartItem), args.Error(1)
}

func (m *MockCartItemStore) AddOrIncrement(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Get(0).(domain.CartItem), args.Error(1)
}

func (m *MockCartItemStore) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (domain.CartItem, error) {
	args := m.Called(ctx, itemID, quantity)
	return args.Get(0).(domain.CartItem), args.Error(1)
}

func (m *MockCartItemStore) Delete(ctx context.Context, itemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartItemStore) ListByCart(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Create(ctx context.Context) (domain.Cart, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartStore) Exists(ctx context.Context, cartID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cartID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartStore) Delete(ctx context.Context, cartID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cartID)
	return args.Bool(0), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalog) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, message any) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}
