package models

// Product represents a supplement available in the catalog.
// Prices are whole rupees.
type Product struct {
	ID           int64    `json:"id" yaml:"id"`
	Slug         string   `json:"slug" yaml:"slug"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Image        string   `json:"image,omitempty" yaml:"image"`
	Price        int64    `json:"price" yaml:"price"`
	Discount     float64  `json:"discount,omitempty" yaml:"discount"`
	Rating       float64  `json:"rating" yaml:"rating"`
	CategoryID   int64    `json:"categoryId" yaml:"categoryId"`
	Tags         []string `json:"tags" yaml:"tags"`
	IsVegan      bool     `json:"isVegan" yaml:"isVegan"`
	IsGlutenFree bool     `json:"isGlutenFree" yaml:"isGlutenFree"`
	Sizes        []Size   `json:"sizes" yaml:"sizes"`
	Flavors      []string `json:"flavors" yaml:"flavors"`
}

// Size is one purchasable pack size of a product
type Size struct {
	Name  string `json:"name" yaml:"name"`
	Price int64  `json:"price" yaml:"price"`
}

// HasDiscount reports whether a positive discount applies
func (p Product) HasDiscount() bool {
	return p.Discount > 0
}

// DiscountedPrice returns the unrounded unit price after discount.
// A missing or zero discount yields the list price.
func (p Product) DiscountedPrice() float64 {
	if !p.HasDiscount() {
		return float64(p.Price)
	}
	return float64(p.Price) - float64(p.Price)*p.Discount/100
}

// Clone returns a copy that shares no slices with p
func (p Product) Clone() Product {
	out := p
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.Sizes != nil {
		out.Sizes = append([]Size(nil), p.Sizes...)
	}
	if p.Flavors != nil {
		out.Flavors = append([]string(nil), p.Flavors...)
	}
	return out
}

// CloneProducts deep-copies a product slice
func CloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// HasTag reports whether the product carries the given tag
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Category groups products for navigation
type Category struct {
	ID          int64  `json:"id" yaml:"id"`
	Slug        string `json:"slug" yaml:"slug"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image,omitempty" yaml:"image"`
	Count       int    `json:"count" yaml:"count"`
}

// Catalog is a loaded set of reference data
type Catalog struct {
	Categories []Category `json:"categories" yaml:"categories"`
	Products   []Product  `json:"products" yaml:"products"`
}
