package service

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/cart/internal/domain"
	"golang.org/x/text/currency"
)

// Pricer derives all money figures from current catalog prices. Nothing it
// computes is ever persisted, so a catalog price change shows up on the very
// next read.
type Pricer struct {
	taxFactor decimal.Decimal
	currency  currency.Unit
}

// NewPricer takes the tax rate as a fraction, e.g. 0.10 for 10%.
func NewPricer(taxRate decimal.Decimal, unit currency.Unit) *Pricer {
	return &Pricer{
		taxFactor: decimal.NewFromInt(1).Add(taxRate),
		currency:  unit,
	}
}

func (p *Pricer) LineTotal(item domain.CartItem, unitPrice domain.Money) domain.Money {
	return unitPrice.Mul(decimal.NewFromInt32(item.Quantity))
}

// CartTotal sums the non-stale lines. An empty cart totals zero.
func (p *Pricer) CartTotal(lines []domain.CartLine) domain.Money {
	total := domain.Money{Amount: decimal.Zero, Currency: p.currency}

	for _, line := range lines {
		if line.StalePrice {
			continue
		}
		total = total.Add(line.LineTotal)
	}

	return total
}

func (p *Pricer) DisplayPriceWithTax(product domain.Product) domain.Money {
	return product.Price.Mul(p.taxFactor)
}
