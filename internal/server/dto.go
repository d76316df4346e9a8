package server

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/cart/internal/domain"
)

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

type CartItemResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Title      string `json:"title,omitempty"`
	UnitPrice  string `json:"unit_price,omitempty"`
	Quantity   int32  `json:"quantity"`
	LineTotal  string `json:"line_total"`
	StalePrice bool   `json:"stale_price,omitempty"`
	Currency   string `json:"currency"`
}

type CartResponse struct {
	ID       string             `json:"id"`
	Items    []CartItemResponse `json:"items"`
	Total    string             `json:"total"`
	Currency string             `json:"currency"`
}

type ProductResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Slug         string `json:"slug"`
	Inventory    int32  `json:"inventory"`
	UnitPrice    string `json:"unit_price"`
	PriceWithTax string `json:"price_with_tax"`
	Currency     string `json:"currency"`
}

type CreateCartResponse struct {
	ID string `json:"id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func toCartItemResponse(item domain.CartItem, product domain.Product) CartItemResponse {
	lineTotal := product.Price.Mul(decimal.NewFromInt32(item.Quantity))

	return CartItemResponse{
		ID:        item.ID.String(),
		ProductID: item.ProductID.String(),
		Title:     product.Title,
		UnitPrice: product.Price.Amount.String(),
		Quantity:  item.Quantity,
		LineTotal: lineTotal.Amount.String(),
		Currency:  lineTotal.Currency.String(),
	}
}

func toCartResponse(view domain.CartView) CartResponse {
	items := make([]CartItemResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, CartItemResponse{
			ID:         line.Item.ID.String(),
			ProductID:  line.Item.ProductID.String(),
			Title:      line.Title,
			UnitPrice:  line.UnitPrice.Amount.String(),
			Quantity:   line.Item.Quantity,
			LineTotal:  line.LineTotal.Amount.String(),
			StalePrice: line.StalePrice,
			Currency:   view.Total.Currency.String(),
		})
	}

	return CartResponse{
		ID:       view.CartID.String(),
		Items:    items,
		Total:    view.Total.Amount.String(),
		Currency: view.Total.Currency.String(),
	}
}

func toProductResponse(product domain.Product, priceWithTax domain.Money) ProductResponse {
	return ProductResponse{
		ID:           product.ID.String(),
		Title:        product.Title,
		Description:  product.Description,
		Slug:         product.Slug,
		Inventory:    product.Inventory,
		UnitPrice:    product.Price.Amount.String(),
		PriceWithTax: priceWithTax.Amount.String(),
		Currency:     product.Price.Currency.String(),
	}
}
