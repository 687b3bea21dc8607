package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/toursearch/internal/booking"
	"github.com/dharmasatrya/toursearch/internal/models"
	"github.com/dharmasatrya/toursearch/internal/payment"
	"github.com/dharmasatrya/toursearch/internal/ratelimit"
)

var april2024 = payment.FixedClock(time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC))

const goodCardJSON = `{"card_name":"Vanessa Johnson","card_number":"4111 1111 1111 1111","expiry":"12/27","cvv":"123"}`

func newBookingServer(limiter *ratelimit.KeyedLimiter) *echo.Echo {
	store := booking.NewStore(booking.SeedBookings(), booking.Config{
		Clock:   april2024,
		Limiter: limiter,
		Logger:  zerolog.Nop(),
	})
	h := NewBookingHandler(store, april2024)

	e := echo.New()
	e.GET("/bookings", h.List)
	e.GET("/bookings/:id", h.Get)
	e.POST("/bookings/:id/pay", h.Pay)
	e.POST("/bookings/:id/cancel", h.Cancel)
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBookingHandler_List(t *testing.T) {
	e := newBookingServer(nil)

	tests := []struct {
		target     string
		wantStatus int
		wantTab    string
		wantIDs    []string
	}{
		{target: "/bookings", wantStatus: http.StatusOK, wantTab: "upcoming", wantIDs: []string{"2"}},
		{target: "/bookings?tab=all", wantStatus: http.StatusOK, wantTab: "all", wantIDs: []string{"1", "2"}},
		{target: "/bookings?tab=cancelled", wantStatus: http.StatusOK, wantTab: "cancelled", wantIDs: []string{}},
		{target: "/bookings?tab=archived", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(e, httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp models.BookingsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantTab, resp.Tab)
			assert.Equal(t, len(tt.wantIDs), resp.Total)

			ids := make([]string, 0, len(resp.Bookings))
			for _, b := range resp.Bookings {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestBookingHandler_Get(t *testing.T) {
	e := newBookingServer(nil)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/bookings/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var b models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "$ 2,850", b.FormattedAmount)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/bookings/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingHandler_Pay(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
		wantReason string
	}{
		{name: "valid card", id: "2", body: goodCardJSON, wantStatus: http.StatusOK},
		{
			name:       "name checked first",
			id:         "2",
			body:       `{"card_name":"","card_number":"12","expiry":"13/99","cvv":"1"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: "invalid_name",
		},
		{
			name:       "expired card",
			id:         "2",
			body:       `{"card_name":"Vanessa Johnson","card_number":"4111111111111111","expiry":"01/24","cvv":"123"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: "invalid_expiry",
		},
		{
			name:       "short cvv",
			id:         "2",
			body:       `{"card_name":"Vanessa Johnson","card_number":"4111111111111111","expiry":"12/27","cvv":"12"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: "invalid_cvv",
		},
		{name: "already paid", id: "1", body: goodCardJSON, wantStatus: http.StatusConflict},
		{name: "unknown booking", id: "42", body: goodCardJSON, wantStatus: http.StatusNotFound},
		{name: "malformed body", id: "2", body: `{"cvv":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newBookingServer(nil)
			req, _ := postJSON("/bookings/"+tt.id+"/pay", tt.body)
			rec := serve(e, req)
			require.Equal(t, tt.wantStatus, rec.Code)

			switch tt.wantStatus {
			case http.StatusOK:
				var b models.Booking
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
				assert.Equal(t, models.BookingConfirmed, b.Status)
				assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
				assert.NotEmpty(t, b.PaymentReference)
			case http.StatusUnprocessableEntity:
				var errResp models.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, "invalid_payment", errResp.Error)
				assert.Equal(t, tt.wantReason, errResp.Reason)
				assert.NotEmpty(t, errResp.Message)
			}
		})
	}
}

func TestBookingHandler_PayRateLimited(t *testing.T) {
	limiter := ratelimit.NewKeyedLimiter(ratelimit.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	e := newBookingServer(limiter)

	req, _ := postJSON("/bookings/2/pay", `{"card_name":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(e, req).Code)

	req, _ = postJSON("/bookings/2/pay", goodCardJSON)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, req).Code)
}

func TestBookingHandler_Cancel(t *testing.T) {
	e := newBookingServer(nil)

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/bookings/1/cancel", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var b models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, models.BookingCancelled, b.Status)
	assert.Equal(t, models.PaymentRefunded, b.PaymentStatus)

	rec = serve(e, httptest.NewRequest(http.MethodPost, "/bookings/1/cancel", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, HealthHandler(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
