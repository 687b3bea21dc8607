// Package booking keeps the traveller's bookings in memory and handles the
// mock card payment flow for pending ones.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dharmasatrya/toursearch/internal/models"
	"github.com/dharmasatrya/toursearch/internal/payment"
	"github.com/dharmasatrya/toursearch/internal/ratelimit"
	"github.com/dharmasatrya/toursearch/internal/timezone"
	"github.com/dharmasatrya/toursearch/pkg/currency"
)

var (
	ErrNotFound       = errors.New("booking not found")
	ErrAlreadyPaid    = errors.New("booking is already paid")
	ErrNotPayable     = errors.New("booking cannot be paid in its current status")
	ErrNotCancellable = errors.New("booking cannot be cancelled in its current status")
	ErrRateLimited    = errors.New("too many payment attempts, try again later")
	ErrInvalidTab     = errors.New("unknown bookings tab")
)

type Tab string

const (
	TabUpcoming  Tab = "upcoming"
	TabPast      Tab = "past"
	TabCancelled Tab = "cancelled"
	TabAll       Tab = "all"
)

func ParseTab(s string) (Tab, error) {
	switch tab := Tab(strings.ToLower(strings.TrimSpace(s))); tab {
	case "":
		return TabUpcoming, nil
	case TabUpcoming, TabPast, TabCancelled, TabAll:
		return tab, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
	}
}

type Config struct {
	Clock payment.Clock
	// Limiter caps payment attempts per booking. Nil disables the check.
	Limiter *ratelimit.KeyedLimiter
	// ProcessingDelay simulates the payment gateway round trip.
	ProcessingDelay time.Duration
	Logger          zerolog.Logger
}

type Store struct {
	mu       sync.RWMutex
	bookings map[string]*models.Booking
	order    []string

	validator *payment.Validator
	clock     payment.Clock
	limiter   *ratelimit.KeyedLimiter
	delay     time.Duration
	logger    zerolog.Logger
	newRef    func() string
}

func NewStore(seed []models.Booking, cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = payment.SystemClock{}
	}

	s := &Store{
		bookings:  make(map[string]*models.Booking, len(seed)),
		validator: payment.NewValidator(cfg.Clock),
		clock:     cfg.Clock,
		limiter:   cfg.Limiter,
		delay:     cfg.ProcessingDelay,
		logger:    cfg.Logger,
		newRef:    func() string { return "pay_" + uuid.NewString() },
	}

	for _, b := range seed {
		b := clone(b)
		if b.FormattedAmount == "" {
			b.FormattedAmount = currency.Format(b.TotalAmount, b.Currency)
		}
		s.bookings[b.ID] = &b
		s.order = append(s.order, b.ID)
	}
	return s
}

// List returns the bookings on tab in creation order. Start dates are read
// in the destination's timezone; a booking whose start date cannot be
// parsed is neither upcoming nor past.
func (s *Store) List(tab Tab, now time.Time) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Booking, 0, len(s.order))
	for _, id := range s.order {
		b := s.bookings[id]
		if onTab(*b, tab, now) {
			result = append(result, clone(*b))
		}
	}
	return result
}

func onTab(b models.Booking, tab Tab, now time.Time) bool {
	switch tab {
	case TabCancelled:
		return b.Status == models.BookingCancelled
	case TabAll:
		return true
	}

	start, err := timezone.ParseDate(b.Tour.StartDate, b.Tour.Destination.Timezone)
	if err != nil {
		return false
	}

	switch tab {
	case TabUpcoming:
		return !start.Before(now) && b.Status != models.BookingCancelled
	case TabPast:
		return start.Before(now) && b.Status == models.BookingCompleted
	default:
		return false
	}
}

func (s *Store) Get(id string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	return clone(*b), nil
}

// Pay validates the card form and, when it passes, marks the booking
// confirmed and paid. A failed form check returns a *payment.ValidationError.
func (s *Store) Pay(ctx context.Context, id string, form payment.Form) (models.Booking, error) {
	current, err := s.Get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if err := payable(current); err != nil {
		return models.Booking{}, err
	}

	if s.limiter != nil && !s.limiter.Allow(id) {
		s.logger.Warn().Str("booking_id", id).Msg("payment attempt rate limited")
		return models.Booking{}, ErrRateLimited
	}

	if err := s.validator.Validate(form).Err(); err != nil {
		s.logger.Info().Str("booking_id", id).Err(err).Msg("payment form rejected")
		return models.Booking{}, err
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return models.Booking{}, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	// status may have changed while the lock was released
	if err := payable(*b); err != nil {
		return models.Booking{}, err
	}

	b.Status = models.BookingConfirmed
	b.PaymentStatus = models.PaymentPaid
	b.PaymentMethod = "card"
	b.PaymentReference = s.newRef()
	b.UpdatedAt = s.clock.Now().UTC()

	s.logger.Info().
		Str("booking_id", id).
		Str("payment_reference", b.PaymentReference).
		Float64("amount", b.TotalAmount).
		Str("currency", b.Currency).
		Msg("booking paid")

	return clone(*b), nil
}

func payable(b models.Booking) error {
	if b.PaymentStatus == models.PaymentPaid {
		return ErrAlreadyPaid
	}
	if b.Status == models.BookingCancelled || b.Status == models.BookingCompleted {
		return ErrNotPayable
	}
	return nil
}

// Cancel moves a pending or confirmed booking to cancelled. A paid booking
// is marked refunded.
func (s *Store) Cancel(id string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
		return models.Booking{}, ErrNotCancellable
	}

	b.Status = models.BookingCancelled
	if b.PaymentStatus == models.PaymentPaid {
		b.PaymentStatus = models.PaymentRefunded
	}
	b.UpdatedAt = s.clock.Now().UTC()

	s.logger.Info().Str("booking_id", id).Str("payment_status", string(b.PaymentStatus)).Msg("booking cancelled")
	return clone(*b), nil
}

func clone(b models.Booking) models.Booking {
	if b.Travelers != nil {
		b.Travelers = append([]models.Traveler(nil), b.Travelers...)
	}
	return b
}
