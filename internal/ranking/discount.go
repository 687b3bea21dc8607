package ranking

import (
	"math"

	"github.com/dharmasatrya/toursearch/internal/models"
	"github.com/dharmasatrya/toursearch/pkg/currency"
)

// Decorate returns a copy of tours with the display-only fields filled in.
func Decorate(tours []models.Tour) []models.Tour {
	result := make([]models.Tour, len(tours))
	for i, t := range tours {
		result[i] = t
		result[i].DiscountPercent = DiscountPercent(t)
		result[i].FormattedPrice = currency.Format(t.Price, t.Currency)
	}
	return result
}

// DiscountPercent is the whole-number saving against the original price, or
// zero when the tour is not discounted.
func DiscountPercent(t models.Tour) float64 {
	if t.OriginalPrice == nil || *t.OriginalPrice <= t.Price || *t.OriginalPrice <= 0 {
		return 0
	}
	return math.Round((*t.OriginalPrice - t.Price) / *t.OriginalPrice * 100)
}
