package handler

import (
	"errors"
	"net/http"

	"github.com/courtly/courtly/internal/dto"
	"github.com/courtly/courtly/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/process_payment", h.ProcessPayment)
	e.GET("/api/bookings/:ref", h.GetBooking)
}

func (h *BookingHandler) ProcessPayment(c echo.Context) error {
	var req dto.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.PaymentResponse{Error: "invalid body"})
	}

	if req.Date == "" || len(req.Timeslots) == 0 || req.CourtID == "" {
		return c.JSON(http.StatusBadRequest, dto.PaymentResponse{Error: "missing booking details"})
	}
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return c.JSON(http.StatusBadRequest, dto.PaymentResponse{Error: "missing customer details"})
	}
	if req.CardNumber == "" || req.CardName == "" || req.ExpiryMonth == "" || req.ExpiryYear == "" || req.CVV == "" {
		return c.JSON(http.StatusBadRequest, dto.PaymentResponse{Error: "missing card details"})
	}

	confirmation, err := h.svc.CreateReservation(c.Request().Context(), service.CreateReservationRequest{
		Date:          req.Date,
		TimeslotIDs:   req.Timeslots,
		CourtID:       req.CourtID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Amount:        req.Amount,
		CardNumber:    req.CardNumber,
		CardName:      req.CardName,
		ExpiryMonth:   req.ExpiryMonth,
		ExpiryYear:    req.ExpiryYear,
		CVV:           req.CVV,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotConflict),
			errors.Is(err, service.ErrCourtNotFound),
			errors.Is(err, service.ErrInvalidDate),
			errors.Is(err, service.ErrNoTimeslots),
			errors.Is(err, service.ErrInvalidSlot),
			errors.Is(err, service.ErrSlotPassed),
			errors.Is(err, service.ErrPriceMismatch),
			errors.Is(err, service.ErrPaymentDeclined):
			return c.JSON(http.StatusBadRequest, dto.PaymentResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, dto.PaymentResponse{Error: "payment processing failed"})
		}
	}

	return c.JSON(http.StatusOK, dto.PaymentResponse{
		Success:   true,
		BookingID: confirmation.BookingID,
	})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	ref := c.Param("ref")
	if ref == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "booking ref is required")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), ref)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
