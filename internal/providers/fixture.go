package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dharmasatrya/toursearch/internal/models"
	"github.com/dharmasatrya/toursearch/internal/providers/data"
	"github.com/dharmasatrya/toursearch/internal/timezone"
)

var ErrUnknownDestination = errors.New("unknown destination")

type catalogFile struct {
	Destinations []catalogDestination `json:"destinations"`
	Tours        []catalogTour        `json:"tours"`
}

type catalogDestination struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Country     string              `json:"country"`
	Continent   string              `json:"continent"`
	Coordinates *models.Coordinates `json:"coordinates"`
	Timezone    string              `json:"timezone"`
	Currency    string              `json:"currency"`
}

type catalogTour struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	ShortDescription string                `json:"shortDescription"`
	Price            float64               `json:"price"`
	OriginalPrice    *float64              `json:"originalPrice"`
	Currency         string                `json:"currency"`
	Duration         int                   `json:"duration"`
	MaxGroupSize     int                   `json:"maxGroupSize"`
	Difficulty       string                `json:"difficulty"`
	Type             string                `json:"type"`
	Category         string                `json:"category"`
	DestinationID    string                `json:"destinationId"`
	Rating           float64               `json:"rating"`
	ReviewCount      int                   `json:"reviewCount"`
	Availability     []catalogAvailability `json:"availability"`
	IsActive         bool                  `json:"isActive"`
	IsFeatured       bool                  `json:"isFeatured"`
	CreatedAt        string                `json:"createdAt"`
	UpdatedAt        string                `json:"updatedAt"`
}

type catalogAvailability struct {
	ID             string  `json:"id"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	AvailableSpots int     `json:"availableSpots"`
	Price          float64 `json:"price"`
	IsActive       bool    `json:"isActive"`
}

// FixtureProvider serves the catalog bundled into the binary.
type FixtureProvider struct {
	tours []models.Tour
}

func NewFixtureProvider(logger zerolog.Logger) (*FixtureProvider, error) {
	tours, err := parseCatalog(data.ToursData, logger)
	if err != nil {
		return nil, err
	}
	return &FixtureProvider{tours: tours}, nil
}

func (p *FixtureProvider) Name() string {
	return "fixture"
}

func (p *FixtureProvider) Tours(ctx context.Context) ([]models.Tour, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cloneTours(p.tours), nil
}

// FileProvider reads a catalog in the fixture format from disk on every
// call, so the file can be edited while the server runs.
type FileProvider struct {
	path   string
	logger zerolog.Logger
}

func NewFileProvider(path string, logger zerolog.Logger) *FileProvider {
	return &FileProvider{path: path, logger: logger}
}

func (p *FileProvider) Name() string {
	return "file"
}

func (p *FileProvider) Tours(ctx context.Context) ([]models.Tour, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parseCatalog(raw, p.logger)
}

// parseCatalog skips tours that cannot be normalized and logs each one.
func parseCatalog(raw []byte, logger zerolog.Logger) ([]models.Tour, error) {
	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	destinations := make(map[string]catalogDestination, len(file.Destinations))
	for _, d := range file.Destinations {
		destinations[d.ID] = d
	}

	tours := make([]models.Tour, 0, len(file.Tours))
	for _, t := range file.Tours {
		tour, err := normalize(t, destinations)
		if err != nil {
			logger.Warn().Str("tour_id", t.ID).Err(err).Msg("skipping catalog tour")
			continue
		}
		tours = append(tours, tour)
	}
	return tours, nil
}

func normalize(t catalogTour, destinations map[string]catalogDestination) (models.Tour, error) {
	d, ok := destinations[t.DestinationID]
	if !ok {
		return models.Tour{}, fmt.Errorf("%w: %q", ErrUnknownDestination, t.DestinationID)
	}

	difficulty := models.Difficulty(t.Difficulty)
	if !difficulty.Valid() {
		return models.Tour{}, fmt.Errorf("tour %s: unknown difficulty %q", t.ID, t.Difficulty)
	}
	category := models.Category(t.Category)
	if !category.Valid() {
		return models.Tour{}, fmt.Errorf("tour %s: unknown category %q", t.ID, t.Category)
	}

	availability := make([]models.Availability, len(t.Availability))
	for i, a := range t.Availability {
		availability[i] = models.Availability{
			ID:             a.ID,
			StartDate:      a.StartDate,
			EndDate:        a.EndDate,
			AvailableSpots: a.AvailableSpots,
			Price:          a.Price,
			IsActive:       a.IsActive,
		}
	}

	return models.Tour{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		ShortDescription: t.ShortDescription,
		Price:            t.Price,
		OriginalPrice:    t.OriginalPrice,
		Currency:         t.Currency,
		Duration:         t.Duration,
		MaxGroupSize:     t.MaxGroupSize,
		Difficulty:       difficulty,
		Type:             models.TourType(t.Type),
		Category:         category,
		Destination: models.Destination{
			ID:          d.ID,
			Name:        d.Name,
			Country:     d.Country,
			Continent:   d.Continent,
			Coordinates: d.Coordinates,
			Timezone:    d.Timezone,
			Currency:    d.Currency,
		},
		Rating:       t.Rating,
		ReviewCount:  t.ReviewCount,
		Availability: availability,
		IsActive:     t.IsActive,
		IsFeatured:   t.IsFeatured,
		CreatedAt:    parseTimestamp(t.CreatedAt, d.Timezone),
		UpdatedAt:    parseTimestamp(t.UpdatedAt, d.Timezone),
	}, nil
}

func parseTimestamp(s, tzName string) time.Time {
	ts, err := timezone.ParseTimeWithOffset(s, tzName)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// cloneTours copies the slices inside each tour so callers cannot reach the
// provider's own data.
func cloneTours(tours []models.Tour) []models.Tour {
	out := make([]models.Tour, len(tours))
	for i, t := range tours {
		out[i] = t
		if t.Availability != nil {
			out[i].Availability = append([]models.Availability(nil), t.Availability...)
		}
		if t.OriginalPrice != nil {
			op := *t.OriginalPrice
			out[i].OriginalPrice = &op
		}
		if t.Destination.Coordinates != nil {
			c := *t.Destination.Coordinates
			out[i].Destination.Coordinates = &c
		}
	}
	return out
}
