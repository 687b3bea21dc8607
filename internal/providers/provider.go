package providers

import (
	"context"

	"github.com/dharmasatrya/toursearch/internal/models"
)

type Provider interface {
	Name() string
	Tours(ctx context.Context) ([]models.Tour, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

// Featured returns the active tours flagged for the home screen, in
// catalog order.
func Featured(tours []models.Tour) []models.Tour {
	result := make([]models.Tour, 0, len(tours))
	for _, t := range tours {
		if t.IsActive && t.IsFeatured {
			result = append(result, t)
		}
	}
	return result
}
