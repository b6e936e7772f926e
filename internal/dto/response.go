package dto

import (
	"github.com/courtly/courtly/internal/catalog"
	"github.com/courtly/courtly/internal/service"
)

type TimeslotsResponse struct {
	Timeslots []catalog.Timeslot `json:"timeslots"`
}

type CourtsResponse struct {
	Courts []catalog.Court `json:"courts"`
}

type NowResponse struct {
	NowUnixMs        int64  `json:"nowUnixMs"`
	NowISO           string `json:"nowISO"`
	Timezone         string `json:"timezone"`
	UTCOffsetMinutes int    `json:"utcOffsetMinutes"`
}

type PaymentResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type BookingResponse struct {
	BookingID     string   `json:"bookingId"`
	Date          string   `json:"date"`
	CourtID       string   `json:"courtId"`
	CourtName     string   `json:"courtName"`
	Timeslots     []string `json:"timeslots"`
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	TotalPrice    float64  `json:"totalPrice"`
	PaymentStatus string   `json:"paymentStatus"`
	CreatedAt     string   `json:"createdAt"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *service.BookingConfirmation) BookingResponse {
	return BookingResponse{
		BookingID:     b.BookingID,
		Date:          b.Date,
		CourtID:       b.CourtID,
		CourtName:     b.CourtName,
		Timeslots:     b.TimeslotIDs,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		TotalPrice:    b.TotalPrice,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
