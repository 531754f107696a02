package catalog

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/nutrikart/storefront/internal/models"
)

// Index answers FilterState queries over a fixed product list using one
// bitmap per category, per tag and per dietary flag. Bit i stands for
// products[i], so walking set bits in ascending order keeps catalog order.
type Index struct {
	products   []models.Product
	byCategory map[int64]*bitset.BitSet
	byTag      map[string]*bitset.BitSet
	vegan      *bitset.BitSet
	glutenFree *bitset.BitSet
}

// NewIndex builds an index over a private copy of products
func NewIndex(products []models.Product) *Index {
	n := uint(len(products))
	idx := &Index{
		products:   models.CloneProducts(products),
		byCategory: make(map[int64]*bitset.BitSet),
		byTag:      make(map[string]*bitset.BitSet),
		vegan:      bitset.New(n),
		glutenFree: bitset.New(n),
	}

	for i, p := range idx.products {
		pos := uint(i)
		cat, ok := idx.byCategory[p.CategoryID]
		if !ok {
			cat = bitset.New(n)
			idx.byCategory[p.CategoryID] = cat
		}
		cat.Set(pos)
		for _, tag := range p.Tags {
			m, ok := idx.byTag[tag]
			if !ok {
				m = bitset.New(n)
				idx.byTag[tag] = m
			}
			m.Set(pos)
		}
		if p.IsVegan {
			idx.vegan.Set(pos)
		}
		if p.IsGlutenFree {
			idx.glutenFree.Set(pos)
		}
	}
	return idx
}

// Len returns the number of indexed products
func (idx *Index) Len() int {
	return len(idx.products)
}

// Products returns a copy of the indexed products in catalog order
func (idx *Index) Products() []models.Product {
	return models.CloneProducts(idx.products)
}

// Apply returns the same result as Apply(idx.Products(), state)
func (idx *Index) Apply(state models.FilterState) []models.Product {
	n := uint(len(idx.products))
	result := bitset.New(n).FlipRange(0, n)

	if len(state.Categories) > 0 {
		mask := bitset.New(n)
		for _, id := range state.Categories {
			if m, ok := idx.byCategory[id]; ok {
				mask.InPlaceUnion(m)
			}
		}
		result.InPlaceIntersection(mask)
	}

	if len(state.Tags) > 0 {
		mask := bitset.New(n)
		for _, tag := range state.Tags {
			if m, ok := idx.byTag[tag]; ok {
				mask.InPlaceUnion(m)
			}
		}
		result.InPlaceIntersection(mask)
	}

	switch state.Dietary {
	case models.DietaryVegan:
		result.InPlaceIntersection(idx.vegan)
	case models.DietaryGlutenFree:
		result.InPlaceIntersection(idx.glutenFree)
	}

	out := make([]models.Product, 0, result.Count())
	for i, ok := result.NextSet(0); ok; i, ok = result.NextSet(i + 1) {
		p := idx.products[i]
		// price and rating are range predicates, checked per candidate
		if state.PriceRange != nil && !state.PriceRange.Contains(p.Price) {
			continue
		}
		if state.MinRating > 0 && p.Rating < state.MinRating {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}
