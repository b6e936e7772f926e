package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Reservation is one booked (date, timeslot, court) tuple. A booking spanning
// several slots produces one row per slot, all sharing the same PaymentRef.
type Reservation struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Date          string        `gorm:"type:varchar(10);not null;index" json:"date"`
	TimeSlotID    string        `gorm:"type:varchar(20);not null" json:"timeSlotId"`
	CourtID       string        `gorm:"type:varchar(20);not null" json:"courtId"`
	CourtName     string        `gorm:"not null" json:"courtName"`
	CustomerName  string        `gorm:"not null" json:"customerName"`
	CustomerEmail string        `gorm:"not null" json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone"`
	TotalPrice    float64       `gorm:"not null" json:"totalPrice"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"paymentStatus"`
	PaymentRef    string        `gorm:"type:varchar(20);not null;index" json:"paymentRef"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
