package booking

import (
	"time"

	"github.com/dharmasatrya/toursearch/internal/models"
)

var seedTraveler = models.Traveler{
	FirstName:   "Vanessa",
	LastName:    "Johnson",
	Email:       "vanessa@example.com",
	Phone:       "+1234567890",
	DateOfBirth: "1990-05-15",
	Nationality: "American",
}

// SeedBookings are the demo bookings the app starts with.
func SeedBookings() []models.Booking {
	return []models.Booking{
		{
			ID:             "1",
			UserID:         "1",
			TourID:         "1",
			AvailabilityID: "1",
			Status:         models.BookingConfirmed,
			Travelers:      []models.Traveler{seedTraveler},
			TotalAmount:    2850,
			Currency:       "USD",
			PaymentStatus:  models.PaymentPaid,
			CreatedAt:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Tour: models.BookedTour{
				ID:    "1",
				Title: "Iconic Brazil Adventure",
				Destination: models.Destination{
					Name:     "Rio de Janeiro",
					Country:  "Brazil",
					Timezone: "America/Sao_Paulo",
				},
				Duration:  8,
				StartDate: "2024-03-15",
				EndDate:   "2024-03-23",
			},
		},
		{
			ID:             "2",
			UserID:         "1",
			TourID:         "3",
			AvailabilityID: "3",
			Status:         models.BookingPending,
			Travelers:      []models.Traveler{seedTraveler},
			TotalAmount:    1850,
			Currency:       "USD",
			PaymentStatus:  models.PaymentPending,
			CreatedAt:      time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt:      time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			Tour: models.BookedTour{
				ID:    "3",
				Title: "Santorini Island Escape",
				Destination: models.Destination{
					Name:     "Santorini",
					Country:  "Greece",
					Timezone: "Europe/Athens",
				},
				Duration:  5,
				StartDate: "2024-05-10",
				EndDate:   "2024-05-15",
			},
		},
	}
}
