package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/courtly/courtly/internal/catalog"
	"github.com/courtly/courtly/internal/dto"
	"github.com/courtly/courtly/internal/models"
	"github.com/courtly/courtly/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock BookingService ---

type mockBookingService struct {
	occupiedFn  func(ctx context.Context, date string, timeslotIDs []string) (map[string]bool, error)
	availableFn func(ctx context.Context, date string, timeslotIDs []string) ([]catalog.Court, error)
	createFn    func(ctx context.Context, req service.CreateReservationRequest) (*service.BookingConfirmation, error)
	getFn       func(ctx context.Context, bookingID string) (*service.BookingConfirmation, error)
}

func (m *mockBookingService) OccupiedCourts(ctx context.Context, date string, timeslotIDs []string) (map[string]bool, error) {
	return m.occupiedFn(ctx, date, timeslotIDs)
}

func (m *mockBookingService) CourtAvailable(ctx context.Context, courtID, date string, timeslotIDs []string) (bool, error) {
	occupied, err := m.occupiedFn(ctx, date, timeslotIDs)
	if err != nil {
		return false, err
	}
	return !occupied[courtID], nil
}

func (m *mockBookingService) AvailableCourts(ctx context.Context, date string, timeslotIDs []string) ([]catalog.Court, error) {
	return m.availableFn(ctx, date, timeslotIDs)
}

func (m *mockBookingService) CreateReservation(ctx context.Context, req service.CreateReservationRequest) (*service.BookingConfirmation, error) {
	return m.createFn(ctx, req)
}

func (m *mockBookingService) GetBooking(ctx context.Context, bookingID string) (*service.BookingConfirmation, error) {
	return m.getFn(ctx, bookingID)
}

const paymentBody = `{
	"date": "2025-06-01",
	"timeslots": ["09:00-10:00"],
	"courtId": "court-2",
	"customerName": "Ploy S.",
	"customerEmail": "ploy@example.com",
	"customerPhone": "+66-81-000-0000",
	"amount": 20,
	"cardNumber": "4242424242424242",
	"cardName": "PLOY S",
	"expiryMonth": "12",
	"expiryYear": "2030",
	"cvv": "123"
}`

func postPayment(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/process_payment", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Tests ---

func TestProcessPayment_Success(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, req service.CreateReservationRequest) (*service.BookingConfirmation, error) {
			assert.Equal(t, "2025-06-01", req.Date)
			assert.Equal(t, []string{"09:00-10:00"}, req.TimeslotIDs)
			assert.Equal(t, "court-2", req.CourtID)
			assert.Equal(t, 20.0, req.Amount)
			return &service.BookingConfirmation{
				BookingID:     "BK-00000042",
				Date:          req.Date,
				CourtID:       req.CourtID,
				PaymentStatus: models.PaymentCompleted,
				CreatedAt:     time.Now(),
			}, nil
		},
	}

	c, rec := postPayment(paymentBody)
	h := NewBookingHandler(svc)

	require.NoError(t, h.ProcessPayment(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "BK-00000042", resp.BookingID)
	assert.Empty(t, resp.Error)
}

func TestProcessPayment_MissingBookingDetails(t *testing.T) {
	c, rec := postPayment(`{"cardNumber":"4242","cardName":"X","expiryMonth":"12","expiryYear":"2030","cvv":"123"}`)
	h := NewBookingHandler(nil)

	require.NoError(t, h.ProcessPayment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "missing booking details", resp.Error)
}

func TestProcessPayment_MissingCardDetails(t *testing.T) {
	body := `{
		"date": "2025-06-01",
		"timeslots": ["09:00-10:00"],
		"courtId": "court-2",
		"customerName": "Ploy S.",
		"customerEmail": "ploy@example.com"
	}`
	c, rec := postPayment(body)
	h := NewBookingHandler(nil)

	require.NoError(t, h.ProcessPayment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "missing card details", resp.Error)
}

func TestProcessPayment_SlotConflict(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, req service.CreateReservationRequest) (*service.BookingConfirmation, error) {
			return nil, service.ErrSlotConflict
		},
	}

	c, rec := postPayment(paymentBody)
	h := NewBookingHandler(svc)

	require.NoError(t, h.ProcessPayment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "already booked")
}

func TestProcessPayment_PaymentDeclined(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, req service.CreateReservationRequest) (*service.BookingConfirmation, error) {
			return nil, service.ErrPaymentDeclined
		},
	}

	c, rec := postPayment(paymentBody)
	h := NewBookingHandler(svc)

	require.NoError(t, h.ProcessPayment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessPayment_UnexpectedError(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, req service.CreateReservationRequest) (*service.BookingConfirmation, error) {
			return nil, errors.New("connection refused")
		},
	}

	c, rec := postPayment(paymentBody)
	h := NewBookingHandler(svc)

	require.NoError(t, h.ProcessPayment(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "payment processing failed", resp.Error)
}

func TestGetBooking_Success(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, bookingID string) (*service.BookingConfirmation, error) {
			return &service.BookingConfirmation{
				BookingID:   bookingID,
				Date:        "2025-06-01",
				CourtID:     "court-2",
				CourtName:   "Court 2",
				TimeslotIDs: []string{"09:00-10:00"},
				TotalPrice:  20,
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/BK-00000042", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("ref")
	c.SetParamValues("BK-00000042")

	h := NewBookingHandler(svc)
	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "BK-00000042", resp.BookingID)
	assert.Equal(t, "Court 2", resp.CourtName)
}

func TestGetBooking_NotFound(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, bookingID string) (*service.BookingConfirmation, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/BK-99999999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("ref")
	c.SetParamValues("BK-99999999")

	h := NewBookingHandler(svc)
	err := h.GetBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
