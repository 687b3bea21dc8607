package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type SortOption string

const (
	SortPriceLowHigh SortOption = "price_asc"
	SortPriceHighLow SortOption = "price_desc"
	SortRating       SortOption = "rating"
	SortDuration     SortOption = "duration"
	SortPopularity   SortOption = "popularity"
	SortDate         SortOption = "date"
)

func (s SortOption) Valid() bool {
	switch s {
	case "", SortPriceLowHigh, SortPriceHighLow, SortRating, SortDuration, SortPopularity, SortDate:
		return true
	}
	return false
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type DurationRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type SearchFilters struct {
	PriceRange   *PriceRange    `json:"price_range,omitempty"`
	Duration     *DurationRange `json:"duration,omitempty"`
	Categories   []Category     `json:"categories,omitempty"`
	Difficulties []Difficulty   `json:"difficulties,omitempty"`
	MinRating    *float64       `json:"min_rating,omitempty"`
	SortBy       SortOption     `json:"sort_by,omitempty"`
}

type SearchRequest struct {
	Query   string         `json:"query,omitempty"`
	Filters *SearchFilters `json:"filters,omitempty"`
}

// Validate rejects filter values no client control can produce. The search
// engine itself accepts anything, so an inverted range is allowed here and
// simply matches nothing.
func (r *SearchRequest) Validate() error {
	r.Query = strings.TrimSpace(r.Query)
	if utf8.RuneCountInString(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}

	f := r.Filters
	if f == nil {
		return nil
	}
	if !f.SortBy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSortOption, f.SortBy)
	}
	if f.PriceRange != nil && (f.PriceRange.Min < 0 || f.PriceRange.Max < 0) {
		return ErrNegativePrice
	}
	if f.Duration != nil && (f.Duration.Min < 0 || f.Duration.Max < 0) {
		return ErrNegativeDuration
	}
	for _, c := range f.Categories {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
		}
	}
	for _, d := range f.Difficulties {
		if !d.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidDifficulty, d)
		}
	}
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > MaxRating) {
		return ErrInvalidRating
	}
	return nil
}

const (
	MaxQueryLength = 200
	MaxRating      = 5.0
)

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrQueryTooLong      ValidationError = "query must not exceed 200 characters"
	ErrInvalidSortOption ValidationError = "sort_by is not a known sort option"
	ErrNegativePrice     ValidationError = "price_range bounds must not be negative"
	ErrNegativeDuration  ValidationError = "duration bounds must not be negative"
	ErrInvalidCategory   ValidationError = "unknown category"
	ErrInvalidDifficulty ValidationError = "unknown difficulty"
	ErrInvalidRating     ValidationError = "min_rating must be between 0 and 5"
)
