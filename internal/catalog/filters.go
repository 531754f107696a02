// Package catalog holds the read-only product catalog: how it is loaded,
// how it is filtered, and the preset filter choices offered to shoppers.
package catalog

import (
	"github.com/nutrikart/storefront/internal/models"
)

// PriceRanges are the radio choices of the price filter
var PriceRanges = []models.PriceRange{
	{ID: 1, Name: "Under ₹2500", Min: 0, Max: 2500},
	{ID: 2, Name: "₹2500 - ₹5000", Min: 2500, Max: 5000},
	{ID: 3, Name: "₹5000 - ₹10000", Min: 5000, Max: 10000},
	{ID: 4, Name: "Over ₹10000", Min: 10000, Max: 100000},
}

// Ratings are the radio choices of the rating filter
var Ratings = []models.RatingOption{
	{ID: 1, Value: 4, Label: "4 Stars & Up"},
	{ID: 2, Value: 3, Label: "3 Stars & Up"},
	{ID: 3, Value: 2, Label: "2 Stars & Up"},
	{ID: 4, Value: 1, Label: "1 Star & Up"},
}

// Tags is the tag vocabulary shown in the filter panel
var Tags = []string{
	"Protein",
	"Pre-Workout",
	"Creatine",
	"Mass Gainer",
	"BCAA",
	"Vitamins",
	"Plant-Based",
	"Vegan",
	"Recovery",
	"Energy",
	"Focus",
	"Strength",
	"Endurance",
	"Stimulant-Free",
}

// DietaryOptions lists the supported dietary constraints
var DietaryOptions = []models.Dietary{models.DietaryVegan, models.DietaryGlutenFree}

// PriceRangeByID looks up a preset price range
func PriceRangeByID(id int) (models.PriceRange, bool) {
	for _, r := range PriceRanges {
		if r.ID == id {
			return r, true
		}
	}
	return models.PriceRange{}, false
}

// CategoryFilter keeps products whose category is selected.
// An empty selection keeps everything.
func CategoryFilter(products []models.Product, categoryIDs []int64) []models.Product {
	if len(categoryIDs) == 0 {
		return products
	}
	selected := make(map[int64]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		selected[id] = struct{}{}
	}
	return keep(products, func(p models.Product) bool {
		_, ok := selected[p.CategoryID]
		return ok
	})
}

// PriceFilter keeps products priced within the range, bounds inclusive
func PriceFilter(products []models.Product, r *models.PriceRange) []models.Product {
	if r == nil {
		return products
	}
	return keep(products, func(p models.Product) bool {
		return r.Contains(p.Price)
	})
}

// RatingFilter keeps products rated at least minRating
func RatingFilter(products []models.Product, minRating float64) []models.Product {
	if minRating <= 0 {
		return products
	}
	return keep(products, func(p models.Product) bool {
		return p.Rating >= minRating
	})
}

// TagFilter keeps products carrying at least one selected tag
func TagFilter(products []models.Product, tags []string) []models.Product {
	if len(tags) == 0 {
		return products
	}
	selected := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		selected[t] = struct{}{}
	}
	return keep(products, func(p models.Product) bool {
		for _, t := range p.Tags {
			if _, ok := selected[t]; ok {
				return true
			}
		}
		return false
	})
}

// DietaryFilter keeps products matching the dietary flag.
// Unknown values impose no constraint.
func DietaryFilter(products []models.Product, dietary models.Dietary) []models.Product {
	switch dietary {
	case models.DietaryVegan:
		return keep(products, func(p models.Product) bool { return p.IsVegan })
	case models.DietaryGlutenFree:
		return keep(products, func(p models.Product) bool { return p.IsGlutenFree })
	default:
		return products
	}
}

// Apply returns the products satisfying every active constraint of state,
// in their original relative order. The input slice is never modified and
// the result never shares its backing array.
func Apply(products []models.Product, state models.FilterState) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	out = CategoryFilter(out, state.Categories)
	out = PriceFilter(out, state.PriceRange)
	out = RatingFilter(out, state.MinRating)
	out = TagFilter(out, state.Tags)
	out = DietaryFilter(out, state.Dietary)
	return out
}

func keep(products []models.Product, pred func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
