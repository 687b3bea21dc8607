package models

import "time"

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
	DifficultyExtreme     Difficulty = "extreme"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyChallenging, DifficultyExtreme:
		return true
	}
	return false
}

type Category string

const (
	CategoryAdventure  Category = "adventure"
	CategoryCultural   Category = "cultural"
	CategoryNature     Category = "nature"
	CategoryHistorical Category = "historical"
	CategoryBeach      Category = "beach"
	CategoryCity       Category = "city"
	CategoryWildlife   Category = "wildlife"
	CategoryLuxury     Category = "luxury"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAdventure, CategoryCultural, CategoryNature, CategoryHistorical,
		CategoryBeach, CategoryCity, CategoryWildlife, CategoryLuxury:
		return true
	}
	return false
}

type TourType string

const (
	TourTypeDomestic      TourType = "domestic"
	TourTypeInternational TourType = "international"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Destination struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Country     string       `json:"country"`
	Continent   string       `json:"continent,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Timezone    string       `json:"timezone,omitempty"`
	Currency    string       `json:"currency,omitempty"`
}

type Availability struct {
	ID             string  `json:"id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	AvailableSpots int     `json:"available_spots"`
	Price          float64 `json:"price"`
	IsActive       bool    `json:"is_active"`
}

type Tour struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	ShortDescription string         `json:"short_description"`
	Price            float64        `json:"price"`
	OriginalPrice    *float64       `json:"original_price,omitempty"`
	Currency         string         `json:"currency"`
	Duration         int            `json:"duration_days"`
	MaxGroupSize     int            `json:"max_group_size"`
	Difficulty       Difficulty     `json:"difficulty"`
	Type             TourType       `json:"type,omitempty"`
	Category         Category       `json:"category"`
	Destination      Destination    `json:"destination"`
	Rating           float64        `json:"rating"`
	ReviewCount      int            `json:"review_count"`
	Availability     []Availability `json:"availability,omitempty"`
	IsActive         bool           `json:"is_active"`
	IsFeatured       bool           `json:"is_featured"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DiscountPercent  float64        `json:"discount_percent,omitempty"`
	FormattedPrice   string         `json:"formatted_price,omitempty"`
}
