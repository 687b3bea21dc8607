package filter

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/toursearch/internal/models"
)

// Apply returns the tours matching query and filters, ordered by
// filters.SortBy. The input slice is never modified and the result never
// aliases it.
func Apply(tours []models.Tour, query string, filters *models.SearchFilters) []models.Tour {
	q := strings.ToLower(strings.TrimSpace(query))

	result := make([]models.Tour, 0, len(tours))
	for _, t := range tours {
		if q != "" && !matchesQuery(t, q) {
			continue
		}
		if filters != nil && !matchesFilters(t, filters) {
			continue
		}
		result = append(result, t)
	}

	if filters == nil {
		return result
	}
	return applySort(result, filters.SortBy)
}

// q must already be lower-cased.
func matchesQuery(t models.Tour, q string) bool {
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Destination.Name), q) ||
		strings.Contains(strings.ToLower(t.Destination.Country), q) ||
		strings.Contains(strings.ToLower(string(t.Category)), q)
}

func matchesFilters(t models.Tour, filters *models.SearchFilters) bool {
	if pr := filters.PriceRange; pr != nil {
		if t.Price < pr.Min || t.Price > pr.Max {
			return false
		}
	}

	if dr := filters.Duration; dr != nil {
		if t.Duration < dr.Min || t.Duration > dr.Max {
			return false
		}
	}

	if len(filters.Categories) > 0 && !contains(filters.Categories, t.Category) {
		return false
	}

	if len(filters.Difficulties) > 0 && !contains(filters.Difficulties, t.Difficulty) {
		return false
	}

	if filters.MinRating != nil && t.Rating < *filters.MinRating {
		return false
	}

	return true
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func applySort(tours []models.Tour, sortBy models.SortOption) []models.Tour {
	if len(tours) < 2 {
		return tours
	}

	switch sortBy {
	case models.SortPriceLowHigh:
		sort.SliceStable(tours, func(i, j int) bool {
			return tours[i].Price < tours[j].Price
		})

	case models.SortPriceHighLow:
		sort.SliceStable(tours, func(i, j int) bool {
			return tours[i].Price > tours[j].Price
		})

	case models.SortRating:
		sort.SliceStable(tours, func(i, j int) bool {
			return tours[i].Rating > tours[j].Rating
		})

	case models.SortDuration:
		sort.SliceStable(tours, func(i, j int) bool {
			return tours[i].Duration < tours[j].Duration
		})

	case models.SortPopularity:
		sort.SliceStable(tours, func(i, j int) bool {
			return tours[i].ReviewCount > tours[j].ReviewCount
		})

	default:
		// date, empty and unknown options keep catalog order
	}

	return tours
}
