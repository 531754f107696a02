package models

import "time"

// Quantity bounds for a single cart line
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Cart is a shopper's set of lines, keyed by an opaque cart ID
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartLine is one stored product/quantity/variant entry
type CartLine struct {
	ID        string `json:"id"`
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Flavor    string `json:"flavor,omitempty"`
}

// LineItem is a cart line resolved against the catalog, ready for pricing
type LineItem struct {
	LineID   string  `json:"lineId"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Flavor   string  `json:"flavor,omitempty"`
}

// AddItemRequest is the body of POST /api/cart/items
type AddItemRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Flavor    string `json:"flavor,omitempty"`
}

// UpdateQuantityRequest is the body of PATCH /api/cart/items/{lineId}
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// PricedLine is a line item with display prices
type PricedLine struct {
	LineItem
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  int64   `json:"subtotal"`
}

// CartSummary is the order summary shown beside the cart
type CartSummary struct {
	Lines                 []PricedLine `json:"lines"`
	ItemCount             int          `json:"itemCount"`
	Subtotal              int64        `json:"subtotal"`
	Shipping              int64        `json:"shipping"`
	Total                 int64        `json:"total"`
	FreeShippingThreshold int64        `json:"freeShippingThreshold"`
	FreeShippingRemaining int64        `json:"freeShippingRemaining"`
}

// CartView is the response for GET /api/cart
type CartView struct {
	ID string `json:"id"`
	CartSummary
}
