package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/nutrikart/storefront/internal/catalog"
	"github.com/nutrikart/storefront/internal/models"
)

// Query parameters understood by the product listing endpoints
const (
	paramCategory   = "category"
	paramPriceRange = "priceRange"
	paramMinPrice   = "minPrice"
	paramMaxPrice   = "maxPrice"
	paramMinRating  = "minRating"
	paramTag        = "tag"
	paramDietary    = "dietary"
)

// ParseFilterState builds a FilterState from query parameters. Values that
// do not parse are dropped, so a bad parameter widens the result instead of
// failing the request.
func ParseFilterState(q url.Values) models.FilterState {
	var state models.FilterState

	for _, v := range listValues(q, paramCategory) {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 || containsID(state.Categories, id) {
			continue
		}
		state.Categories = append(state.Categories, id)
	}

	state.PriceRange = parsePriceRange(q)

	if v := q.Get(paramMinRating); v != "" {
		if rating, err := strconv.ParseFloat(v, 64); err == nil && rating > 0 && rating <= 5 {
			state.MinRating = rating
		}
	}

	for _, tag := range listValues(q, paramTag) {
		if !containsString(state.Tags, tag) {
			state.Tags = append(state.Tags, tag)
		}
	}

	switch d := models.Dietary(strings.ToLower(q.Get(paramDietary))); d {
	case models.DietaryVegan, models.DietaryGlutenFree:
		state.Dietary = d
	}

	return state
}

// parsePriceRange prefers a preset id; otherwise minPrice and maxPrice
// together describe a custom inclusive range.
func parsePriceRange(q url.Values) *models.PriceRange {
	if v := q.Get(paramPriceRange); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			if r, ok := catalog.PriceRangeByID(id); ok {
				return &r
			}
		}
	}

	minStr, maxStr := q.Get(paramMinPrice), q.Get(paramMaxPrice)
	if minStr == "" || maxStr == "" {
		return nil
	}
	lo, err := strconv.ParseInt(minStr, 10, 64)
	if err != nil || lo < 0 {
		return nil
	}
	hi, err := strconv.ParseInt(maxStr, 10, 64)
	if err != nil || hi < lo {
		return nil
	}
	return &models.PriceRange{Name: "Custom", Min: lo, Max: hi}
}

// listValues accepts both repeated parameters and comma-separated lists
func listValues(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
