package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type Traveler struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Nationality string `json:"nationality"`
}

// BookedTour is the slice of a tour a booking card needs.
type BookedTour struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Destination Destination `json:"destination"`
	Duration    int         `json:"duration_days"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
}

type Booking struct {
	ID               string        `json:"id"`
	UserID           string        `json:"user_id"`
	TourID           string        `json:"tour_id"`
	AvailabilityID   string        `json:"availability_id"`
	Status           BookingStatus `json:"status"`
	Travelers        []Traveler    `json:"travelers"`
	TotalAmount      float64       `json:"total_amount"`
	Currency         string        `json:"currency"`
	FormattedAmount  string        `json:"formatted_amount,omitempty"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentMethod    string        `json:"payment_method,omitempty"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	Tour             BookedTour    `json:"tour"`
}
