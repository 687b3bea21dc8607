package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/toursearch/internal/booking"
	"github.com/dharmasatrya/toursearch/internal/models"
	"github.com/dharmasatrya/toursearch/internal/payment"
)

type BookingStore interface {
	List(tab booking.Tab, now time.Time) []models.Booking
	Get(id string) (models.Booking, error)
	Pay(ctx context.Context, id string, form payment.Form) (models.Booking, error)
	Cancel(id string) (models.Booking, error)
}

type BookingHandler struct {
	store BookingStore
	clock payment.Clock
}

func NewBookingHandler(store BookingStore, clock payment.Clock) *BookingHandler {
	if clock == nil {
		clock = payment.SystemClock{}
	}
	return &BookingHandler{store: store, clock: clock}
}

func (h *BookingHandler) List(c echo.Context) error {
	tab, err := booking.ParseTab(c.QueryParam("tab"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	bookings := h.store.List(tab, h.clock.Now())
	return c.JSON(http.StatusOK, models.BookingsResponse{
		Tab:      string(tab),
		Total:    len(bookings),
		Bookings: bookings,
	})
}

func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.store.Get(c.Param("id"))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Pay(c echo.Context) error {
	var form payment.Form
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	b, err := h.store.Pay(c.Request().Context(), c.Param("id"), form)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	b, err := h.store.Cancel(c.Param("id"))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func bookingError(c echo.Context, err error) error {
	var verr *payment.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "invalid_payment",
			Message: verr.Message,
			Code:    http.StatusUnprocessableEntity,
			Reason:  string(verr.Reason),
		})
	}

	status, code := http.StatusInternalServerError, "booking_error"
	switch {
	case errors.Is(err, booking.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, booking.ErrAlreadyPaid), errors.Is(err, booking.ErrNotPayable), errors.Is(err, booking.ErrNotCancellable):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, booking.ErrRateLimited):
		status, code = http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusServiceUnavailable, "payment_timeout"
	}

	return c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: err.Error(),
		Code:    status,
	})
}
