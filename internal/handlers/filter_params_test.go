package handlers

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/nutrikart/storefront/internal/models"
)

func TestParseFilterState(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.FilterState
	}{
		{
			name:  "empty",
			query: "",
			want:  models.FilterState{},
		},
		{
			name:  "repeated and comma categories are merged and deduplicated",
			query: "category=1&category=2,1,x",
			want:  models.FilterState{Categories: []int64{1, 2}},
		},
		{
			name:  "preset price range wins over custom bounds",
			query: "priceRange=2&minPrice=1&maxPrice=10",
			want:  models.FilterState{PriceRange: &models.PriceRange{ID: 2, Name: "₹2500 - ₹5000", Min: 2500, Max: 5000}},
		},
		{
			name:  "custom price range",
			query: "minPrice=100&maxPrice=900",
			want:  models.FilterState{PriceRange: &models.PriceRange{Name: "Custom", Min: 100, Max: 900}},
		},
		{
			name:  "inverted custom range is ignored",
			query: "minPrice=900&maxPrice=100",
			want:  models.FilterState{},
		},
		{
			name:  "half a custom range is ignored",
			query: "minPrice=100",
			want:  models.FilterState{},
		},
		{
			name:  "rating out of range is ignored",
			query: "minRating=7",
			want:  models.FilterState{},
		},
		{
			name:  "rating",
			query: "minRating=3",
			want:  models.FilterState{MinRating: 3},
		},
		{
			name:  "tags",
			query: "tag=Vegan,Protein&tag=Vegan",
			want:  models.FilterState{Tags: []string{"Vegan", "Protein"}},
		},
		{
			name:  "dietary is case insensitive",
			query: "dietary=Gluten-Free",
			want:  models.FilterState{Dietary: models.DietaryGlutenFree},
		},
		{
			name:  "unknown dietary is ignored",
			query: "dietary=paleo",
			want:  models.FilterState{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad test query: %v", err)
			}
			got := ParseFilterState(q)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFilterState(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}
