package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/cart/internal/domain"
	"github.com/storefront/cart/internal/platform/metrics"
	"github.com/storefront/cart/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) CreateCart(ctx context.Context) (domain.Cart, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Get(0).(domain.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Get(0).(domain.CartItem), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

type MockCartViewer struct {
	mock.Mock
}

func (m *MockCartViewer) GetCart(ctx context.Context, cartID uuid.UUID) (domain.CartView, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(domain.CartView), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, domain.Money, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Get(1).(domain.Money), args.Error(2)
}

type handlerFixture struct {
	carts    *MockCartService
	viewer   *MockCartViewer
	products *MockProductService
	router   http.Handler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		carts:    new(MockCartService),
		viewer:   new(MockCartViewer),
		products: new(MockProductService),
	}

	logger := zap.NewNop()
	cartHandler := server.NewCartHandler(f.carts, f.viewer, f.products, logger, time.Second)
	productHandler := server.NewProductHandler(f.products, logger, time.Second)
	f.router = server.NewRouter(cartHandler, productHandler, metrics.New("test"))

	return f
}

func (f *handlerFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func usd(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.USD}
}

func TestAddItemValidation(t *testing.T) {
	f := newHandlerFixture()
	cartID := uuid.New()

	tests := []struct {
		name string
		body string
	}{
		{"zero quantity", `{"product_id":"` + uuid.NewString() + `","quantity":0}`},
		{"negative quantity", `{"product_id":"` + uuid.NewString() + `","quantity":-1}`},
		{"malformed product id", `{"product_id":"not-a-uuid","quantity":1}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/carts/"+cartID.String()+"/items", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	f.carts.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddItemUnknownProduct(t *testing.T) {
	f := newHandlerFixture()
	cartID := uuid.New()
	productID := uuid.New()

	f.carts.On("AddToCart", mock.Anything, cartID, productID, int32(1)).
		Return(domain.CartItem{}, domain.ErrProductNotFound)

	rec := f.do(t, http.MethodPost, "/carts/"+cartID.String()+"/items",
		`{"product_id":"`+productID.String()+`","quantity":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "product_not_found", resp.Code)
}

func TestAddItemMerged(t *testing.T) {
	f := newHandlerFixture()
	cartID := uuid.New()
	productID := uuid.New()

	item := domain.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: 5}
	product := domain.Product{ID: productID, Title: "mug", Price: usd("4.50")}

	f.carts.On("AddToCart", mock.Anything, cartID, productID, int32(3)).Return(item, nil)
	f.products.On("GetProduct", mock.Anything, productID).Return(product, usd("4.95"), nil)

	rec := f.do(t, http.MethodPost, "/carts/"+cartID.String()+"/items",
		`{"product_id":"`+productID.String()+`","quantity":3}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp server.CartItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, item.ID.String(), resp.ID)
	assert.Equal(t, int32(5), resp.Quantity)
	assert.Equal(t, "mug", resp.Title)
	assert.Equal(t, "22.50", resp.LineTotal)
}

func TestAddItemConflictExhausted(t *testing.T) {
	f := newHandlerFixture()
	cartID := uuid.New()
	productID := uuid.New()

	f.carts.On("AddToCart", mock.Anything, cartID, productID, int32(1)).
		Return(domain.CartItem{}, domain.ErrConflict)

	rec := f.do(t, http.MethodPost, "/carts/"+cartID.String()+"/items",
		`{"product_id":"`+productID.String()+`","quantity":1}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUpdateQuantityMissing(t *testing.T) {
	f := newHandlerFixture()
	cartID := uuid.New()
	productID := uuid.New()

	f.carts.On("UpdateQuantity", mock.Anything, cartID, productID, int32(2)).
		Return(domain.CartItem{}, domain.ErrItemNotFound)

	rec := f.do(t, http.MethodPatch,
		"/carts/"+cartID.String()+"/items/"+productID.String(), `{"quantity":2}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveItemAlwaysSucceeds(t *testing.T) {
	f := newHandlerFixture()
	cartID := uuid.New()
	productID := uuid.New()

	f.carts.On("RemoveItem", mock.Anything, cartID, productID).Return(nil)

	rec := f.do(t, http.MethodDelete,
		"/carts/"+cartID.String()+"/items/"+productID.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetCartNotFound(t *testing.T) {
	f := newHandlerFixture()
	cartID := uuid.New()

	f.viewer.On("GetCart", mock.Anything, cartID).
		Return(domain.CartView{}, domain.ErrCartNotFound)

	rec := f.do(t, http.MethodGet, "/carts/"+cartID.String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCart(t *testing.T) {
	f := newHandlerFixture()
	cartID := uuid.New()

	view := domain.CartView{
		CartID: cartID,
		Lines: []domain.CartLine{
			{
				Item:      domain.CartItem{ID: uuid.New(), CartID: cartID, ProductID: uuid.New(), Quantity: 5},
				Title:     "mug",
				UnitPrice: usd("4.50"),
				LineTotal: usd("22.50"),
			},
		},
		Total: usd("22.50"),
	}

	f.viewer.On("GetCart", mock.Anything, cartID).Return(view, nil)

	rec := f.do(t, http.MethodGet, "/carts/"+cartID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp server.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "mug", resp.Items[0].Title)
	assert.Equal(t, "22.50", resp.Total)
	assert.Equal(t, "USD", resp.Currency)
}

func TestGetCartBadID(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodGet, "/carts/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.viewer.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
}

func TestGetProductIncludesTaxedPrice(t *testing.T) {
	f := newHandlerFixture()
	productID := uuid.New()

	product := domain.Product{ID: productID, Title: "mug", Slug: "mug", Inventory: 3, Price: usd("10.00")}

	f.products.On("GetProduct", mock.Anything, productID).Return(product, usd("11.00"), nil)

	rec := f.do(t, http.MethodGet, "/products/"+productID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp server.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "10.00", resp.UnitPrice)
	assert.Equal(t, "11.00", resp.PriceWithTax)
}

func TestCreateCart(t *testing.T) {
	f := newHandlerFixture()
	cartID := uuid.New()

	f.carts.On("CreateCart", mock.Anything).Return(domain.Cart{ID: cartID}, nil)

	rec := f.do(t, http.MethodPost, "/carts", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp server.CreateCartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, cartID.String(), resp.ID)
}
