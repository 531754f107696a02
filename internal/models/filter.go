package models

// Dietary is a single-select dietary constraint
type Dietary string

const (
	DietaryNone       Dietary = ""
	DietaryVegan      Dietary = "vegan"
	DietaryGlutenFree Dietary = "gluten-free"
)

// PriceRange is an inclusive price band
type PriceRange struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Min  int64  `json:"min"`
	Max  int64  `json:"max"`
}

// Contains reports whether min <= price <= max
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// RatingOption is a "N stars & up" choice
type RatingOption struct {
	ID    int     `json:"id"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// FilterState holds the constraints a shopper applied to the catalog view.
// The zero value applies no constraint.
//
// Categories and Tags are multi-select. PriceRange, MinRating and Dietary are
// single-select; a zero MinRating means no rating constraint.
type FilterState struct {
	Categories []int64     `json:"categories"`
	PriceRange *PriceRange `json:"priceRange"`
	MinRating  float64     `json:"minRating,omitempty"`
	Tags       []string    `json:"tags"`
	Dietary    Dietary     `json:"dietary,omitempty"`
}

// IsActive reports whether any constraint is set
func (f FilterState) IsActive() bool {
	return len(f.Categories) > 0 ||
		f.PriceRange != nil ||
		f.MinRating > 0 ||
		len(f.Tags) > 0 ||
		f.Dietary != DietaryNone
}

// ToggleCategory adds the category if absent, removes it otherwise
func (f FilterState) ToggleCategory(id int64) FilterState {
	out := make([]int64, 0, len(f.Categories)+1)
	found := false
	for _, c := range f.Categories {
		if c == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		out = append(out, id)
	}
	f.Categories = out
	return f
}

// TogglePrice selects r, or clears the price constraint if r is already selected
func (f FilterState) TogglePrice(r PriceRange) FilterState {
	if f.PriceRange != nil && f.PriceRange.ID == r.ID {
		f.PriceRange = nil
		return f
	}
	selected := r
	f.PriceRange = &selected
	return f
}

// ToggleRating selects the minimum rating, or clears it when already selected
func (f FilterState) ToggleRating(value float64) FilterState {
	if f.MinRating == value {
		f.MinRating = 0
		return f
	}
	f.MinRating = value
	return f
}

// ToggleTag adds the tag if absent, removes it otherwise
func (f FilterState) ToggleTag(tag string) FilterState {
	out := make([]string, 0, len(f.Tags)+1)
	found := false
	for _, t := range f.Tags {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	f.Tags = out
	return f
}

// ToggleDietary selects d, or clears it when already selected
func (f FilterState) ToggleDietary(d Dietary) FilterState {
	if f.Dietary == d {
		f.Dietary = DietaryNone
		return f
	}
	f.Dietary = d
	return f
}

// Reset returns the empty filter state
func (f FilterState) Reset() FilterState {
	return FilterState{}
}

// FilterOptions describes every choice the filter panel offers
type FilterOptions struct {
	Categories  []Category     `json:"categories"`
	PriceRanges []PriceRange   `json:"priceRanges"`
	Ratings     []RatingOption `json:"ratings"`
	Tags        []string       `json:"tags"`
	Dietary     []Dietary      `json:"dietary"`
}
