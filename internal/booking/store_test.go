package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/toursearch/internal/models"
	"github.com/dharmasatrya/toursearch/internal/payment"
	"github.com/dharmasatrya/toursearch/internal/ratelimit"
)

var april2024 = time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, limiter *ratelimit.KeyedLimiter) *Store {
	t.Helper()
	s := NewStore(SeedBookings(), Config{
		Clock:   payment.FixedClock(april2024),
		Limiter: limiter,
		Logger:  zerolog.Nop(),
	})
	s.newRef = func() string { return "pay_test" }
	return s
}

func goodCard() payment.Form {
	return payment.Form{
		CardName:   "Vanessa Johnson",
		CardNumber: "4111 1111 1111 1111",
		Expiry:     "12/27",
		CVV:        "123",
	}
}

func bookingIDs(bs []models.Booking) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabUpcoming, tab)

	tab, err = ParseTab(" Past ")
	require.NoError(t, err)
	assert.Equal(t, TabPast, tab)

	_, err = ParseTab("archived")
	assert.ErrorIs(t, err, ErrInvalidTab)
}

func TestStore_List(t *testing.T) {
	s := newTestStore(t, nil)

	assert.Equal(t, []string{"2"}, bookingIDs(s.List(TabUpcoming, april2024)))
	assert.Empty(t, s.List(TabPast, april2024), "started but not completed is not past")
	assert.Empty(t, s.List(TabCancelled, april2024))
	assert.Equal(t, []string{"1", "2"}, bookingIDs(s.List(TabAll, april2024)))

	later := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, s.List(TabUpcoming, later))
}

func TestStore_ListUsesDestinationTimezone(t *testing.T) {
	s := newTestStore(t, nil)

	// Santorini starts at 2024-05-10 00:00 Athens time, 2024-05-09 21:00 UTC.
	justBefore := time.Date(2024, 5, 9, 20, 59, 0, 0, time.UTC)
	justAfter := time.Date(2024, 5, 9, 21, 1, 0, 0, time.UTC)

	assert.Equal(t, []string{"2"}, bookingIDs(s.List(TabUpcoming, justBefore)))
	assert.Empty(t, s.List(TabUpcoming, justAfter))
}

func TestStore_PastRequiresCompleted(t *testing.T) {
	seed := SeedBookings()
	seed[0].Status = models.BookingCompleted
	s := NewStore(seed, Config{Logger: zerolog.Nop()})

	assert.Equal(t, []string{"1"}, bookingIDs(s.List(TabPast, april2024)))
}

func TestStore_SeedFormatting(t *testing.T) {
	s := newTestStore(t, nil)
	b, err := s.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "$ 1,850", b.FormattedAmount)
}

func TestStore_Get(t *testing.T) {
	s := newTestStore(t, nil)

	b, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Iconic Brazil Adventure", b.Tour.Title)

	b.Travelers[0].FirstName = "changed"
	again, _ := s.Get("1")
	assert.Equal(t, "Vanessa", again.Travelers[0].FirstName)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Pay(t *testing.T) {
	s := newTestStore(t, nil)

	b, err := s.Pay(context.Background(), "2", goodCard())
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
	assert.Equal(t, "card", b.PaymentMethod)
	assert.Equal(t, "pay_test", b.PaymentReference)
	assert.Equal(t, april2024, b.UpdatedAt)

	stored, _ := s.Get("2")
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)

	_, err = s.Pay(context.Background(), "2", goodCard())
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestStore_PayErrors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		form    func() payment.Form
		prepare func(*Store)
		wantErr error
	}{
		{name: "unknown booking", id: "9", form: goodCard, wantErr: ErrNotFound},
		{name: "already paid", id: "1", form: goodCard, wantErr: ErrAlreadyPaid},
		{
			name:    "cancelled booking",
			id:      "2",
			form:    goodCard,
			prepare: func(s *Store) { _, _ = s.Cancel("2") },
			wantErr: ErrNotPayable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, nil)
			if tt.prepare != nil {
				tt.prepare(s)
			}
			_, err := s.Pay(context.Background(), tt.id, tt.form())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStore_PayInvalidForm(t *testing.T) {
	s := newTestStore(t, nil)
	form := goodCard()
	form.Expiry = "01/24"

	_, err := s.Pay(context.Background(), "2", form)
	var verr *payment.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, payment.InvalidExpiry, verr.Reason)

	b, _ := s.Get("2")
	assert.Equal(t, models.PaymentPending, b.PaymentStatus, "rejected form leaves booking untouched")
}

func TestStore_PayRateLimited(t *testing.T) {
	limiter := ratelimit.NewKeyedLimiter(ratelimit.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	s := newTestStore(t, limiter)
	bad := goodCard()
	bad.CVV = "1"

	for i := 0; i < 2; i++ {
		_, err := s.Pay(context.Background(), "2", bad)
		var verr *payment.ValidationError
		require.True(t, errors.As(err, &verr))
	}

	_, err := s.Pay(context.Background(), "2", goodCard())
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestStore_PayHonoursContext(t *testing.T) {
	s := NewStore(SeedBookings(), Config{
		Clock:           payment.FixedClock(april2024),
		ProcessingDelay: time.Second,
		Logger:          zerolog.Nop(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Pay(ctx, "2", goodCard())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	b, _ := s.Get("2")
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
}

func TestStore_ConcurrentPayOnlyOneWins(t *testing.T) {
	s := newTestStore(t, nil)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Pay(context.Background(), "2", goodCard())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyPaid)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestStore_Cancel(t *testing.T) {
	s := newTestStore(t, nil)

	b, err := s.Cancel("1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, b.Status)
	assert.Equal(t, models.PaymentRefunded, b.PaymentStatus)

	b, err = s.Cancel("2")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)

	assert.Equal(t, []string{"1", "2"}, bookingIDs(s.List(TabCancelled, april2024)))
	assert.Empty(t, s.List(TabUpcoming, april2024))

	_, err = s.Cancel("1")
	assert.ErrorIs(t, err, ErrNotCancellable)
	_, err = s.Cancel("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
