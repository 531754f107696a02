// Package pricing computes cart totals. Every function here is pure.
package pricing

import (
	"math"

	"github.com/nutrikart/storefront/internal/models"
)

const (
	DefaultFreeShippingThreshold int64 = 7500
	DefaultFlatShippingFee       int64 = 250
)

// ShippingPolicy waives the flat fee once the subtotal reaches the threshold
type ShippingPolicy struct {
	FreeThreshold int64
	FlatFee       int64
}

// DefaultShippingPolicy is ₹250 shipping, free from ₹7500
func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: DefaultFreeShippingThreshold,
		FlatFee:       DefaultFlatShippingFee,
	}
}

// Cost returns the shipping charged for a rounded subtotal
func (p ShippingPolicy) Cost(subtotal int64) int64 {
	if subtotal >= p.FreeThreshold {
		return 0
	}
	return p.FlatFee
}

// Calculator prices carts under a shipping policy
type Calculator struct {
	policy ShippingPolicy
}

// NewCalculator creates a calculator
func NewCalculator(policy ShippingPolicy) *Calculator {
	return &Calculator{policy: policy}
}

// Policy returns the calculator's shipping policy
func (c *Calculator) Policy() ShippingPolicy {
	return c.policy
}

// ClampQuantity bounds q to [MinQuantity, MaxQuantity]
func ClampQuantity(q int) int {
	if q < models.MinQuantity {
		return models.MinQuantity
	}
	if q > models.MaxQuantity {
		return models.MaxQuantity
	}
	return q
}

// EffectiveUnitPrice is the discounted unit price, unrounded
func EffectiveUnitPrice(p models.Product) float64 {
	return p.DiscountedPrice()
}

// LineSubtotal is quantity times the effective unit price, unrounded
func LineSubtotal(item models.LineItem) float64 {
	return float64(item.Quantity) * EffectiveUnitPrice(item.Product)
}

// Subtotal sums the unrounded line subtotals
func Subtotal(items []models.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += LineSubtotal(item)
	}
	return total
}

// Round rounds a rupee amount for display, halves away from zero
func Round(amount float64) int64 {
	return int64(math.Round(amount))
}

// Summarize prices every line and the cart. Rounding happens once, after
// summing, so per-line display values need not add up to Subtotal.
func (c *Calculator) Summarize(items []models.LineItem) models.CartSummary {
	lines := make([]models.PricedLine, 0, len(items))
	count := 0
	for _, item := range items {
		lines = append(lines, models.PricedLine{
			LineItem:  item,
			UnitPrice: EffectiveUnitPrice(item.Product),
			Subtotal:  Round(LineSubtotal(item)),
		})
		count += item.Quantity
	}

	subtotal := Round(Subtotal(items))
	shipping := c.policy.Cost(subtotal)

	remaining := c.policy.FreeThreshold - subtotal
	if remaining < 0 {
		remaining = 0
	}

	return models.CartSummary{
		Lines:                 lines,
		ItemCount:             count,
		Subtotal:              subtotal,
		Shipping:              shipping,
		Total:                 subtotal + shipping,
		FreeShippingThreshold: c.policy.FreeThreshold,
		FreeShippingRemaining: remaining,
	}
}
