package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/courtly/courtly/internal/catalog"
	"github.com/courtly/courtly/internal/models"
	"github.com/courtly/courtly/internal/payment"
	"github.com/courtly/courtly/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCourtNotFound   = errors.New("court not found")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrNoTimeslots     = errors.New("at least one timeslot is required")
	ErrInvalidSlot     = errors.New("unknown timeslot")
	ErrSlotPassed      = errors.New("timeslot has already passed")
	ErrSlotConflict    = errors.New("court is already booked for the selected timeslot")
	ErrPriceMismatch   = errors.New("amount does not match the court price")
	ErrPaymentDeclined = errors.New("payment was declined")
	ErrBookingNotFound = errors.New("booking not found")
)

// EventPublisher is the publish side of pkg/rabbitmq.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type CreateReservationRequest struct {
	Date          string
	TimeslotIDs   []string
	CourtID       string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	// Amount is the client's idea of the total. Zero means "not supplied";
	// a non-zero value must match the server-side price.
	Amount      float64
	CardNumber  string
	CardName    string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
}

type BookingConfirmation struct {
	BookingID     string               `json:"bookingId"`
	Date          string               `json:"date"`
	CourtID       string               `json:"courtId"`
	CourtName     string               `json:"courtName"`
	TimeslotIDs   []string             `json:"timeslots"`
	CustomerName  string               `json:"customerName"`
	CustomerEmail string               `json:"customerEmail"`
	TotalPrice    float64              `json:"totalPrice"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
}

type BookingService interface {
	OccupiedCourts(ctx context.Context, date string, timeslotIDs []string) (map[string]bool, error)
	CourtAvailable(ctx context.Context, courtID, date string, timeslotIDs []string) (bool, error)
	AvailableCourts(ctx context.Context, date string, timeslotIDs []string) ([]catalog.Court, error)
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*BookingConfirmation, error)
	GetBooking(ctx context.Context, bookingID string) (*BookingConfirmation, error)
}

type bookingService struct {
	repo      repository.ReservationRepository
	holds     repository.SlotHoldRepository
	gateway   payment.Gateway
	publisher EventPublisher
	location  *time.Location
	holdTTL   time.Duration
	now       func() time.Time
}

// NewBookingService wires the reservation flow. holds and publisher may be
// nil; the service then runs without payment-window holds or event emission.
func NewBookingService(
	repo repository.ReservationRepository,
	holds repository.SlotHoldRepository,
	gateway payment.Gateway,
	publisher EventPublisher,
	location *time.Location,
	holdTTL time.Duration,
) BookingService {
	return &bookingService{
		repo:      repo,
		holds:     holds,
		gateway:   gateway,
		publisher: publisher,
		location:  location,
		holdTTL:   holdTTL,
		now:       time.Now,
	}
}

// occupiedFrom collects the courts whose reservations intersect the requested
// slot set. Hash-set membership keeps the scan linear.
func occupiedFrom(reservations []models.Reservation, timeslotIDs []string) map[string]bool {
	requested := make(map[string]bool, len(timeslotIDs))
	for _, id := range timeslotIDs {
		requested[id] = true
	}

	occupied := make(map[string]bool)
	for _, r := range reservations {
		if requested[r.TimeSlotID] {
			occupied[r.CourtID] = true
		}
	}
	return occupied
}

func (s *bookingService) OccupiedCourts(ctx context.Context, date string, timeslotIDs []string) (map[string]bool, error) {
	// An empty slot set places no restriction: nothing counts as occupied.
	if len(timeslotIDs) == 0 {
		return map[string]bool{}, nil
	}

	reservations, err := s.repo.FindCompletedByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find reservations for %s: %w", date, err)
	}
	return occupiedFrom(reservations, timeslotIDs), nil
}

func (s *bookingService) CourtAvailable(ctx context.Context, courtID, date string, timeslotIDs []string) (bool, error) {
	occupied, err := s.OccupiedCourts(ctx, date, timeslotIDs)
	if err != nil {
		return false, err
	}
	return !occupied[courtID], nil
}

func (s *bookingService) AvailableCourts(ctx context.Context, date string, timeslotIDs []string) ([]catalog.Court, error) {
	occupied, err := s.OccupiedCourts(ctx, date, timeslotIDs)
	if err != nil {
		return nil, err
	}

	all := catalog.Courts()
	available := make([]catalog.Court, 0, len(all))
	for _, c := range all {
		if !occupied[c.ID] {
			available = append(available, c)
		}
	}
	return available, nil
}

func (s *bookingService) validate(req *CreateReservationRequest) (catalog.Court, float64, error) {
	court, ok := catalog.CourtByID(req.CourtID)
	if !ok {
		return catalog.Court{}, 0, ErrCourtNotFound
	}
	if _, err := time.ParseInLocation(catalog.DateLayout, req.Date, s.location); err != nil {
		return catalog.Court{}, 0, ErrInvalidDate
	}
	if len(req.TimeslotIDs) == 0 {
		return catalog.Court{}, 0, ErrNoTimeslots
	}

	now := s.now().In(s.location)
	seen := make(map[string]bool, len(req.TimeslotIDs))
	for _, id := range req.TimeslotIDs {
		if _, ok := catalog.TimeslotByID(id); !ok {
			return catalog.Court{}, 0, fmt.Errorf("%w: %s", ErrInvalidSlot, id)
		}
		if seen[id] {
			return catalog.Court{}, 0, fmt.Errorf("%w: %s requested twice", ErrInvalidSlot, id)
		}
		seen[id] = true
		if catalog.SlotPassed(id, req.Date, now) {
			return catalog.Court{}, 0, fmt.Errorf("%w: %s", ErrSlotPassed, id)
		}
	}

	price, err := catalog.Price(req.CourtID, req.TimeslotIDs)
	if err != nil {
		return catalog.Court{}, 0, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if req.Amount != 0 && req.Amount != price {
		return catalog.Court{}, 0, ErrPriceMismatch
	}
	return court, price, nil
}

func (s *bookingService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*BookingConfirmation, error) {
	court, price, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	// Hold the slots for the duration of the charge so two sessions cannot
	// both reach the payment step for the same court. The transaction below
	// remains the real guard.
	holdToken := uuid.NewString()
	holdsTaken := false
	if s.holds != nil {
		ok, err := s.holds.AcquireAll(ctx, req.Date, req.CourtID, req.TimeslotIDs, holdToken, s.holdTTL)
		if err != nil {
			return nil, fmt.Errorf("slot holds: %w", err)
		}
		if !ok {
			return nil, ErrSlotConflict
		}
		holdsTaken = true
	}
	releaseHolds := func() {
		if holdsTaken {
			if err := s.holds.ReleaseAll(ctx, req.Date, req.CourtID, req.TimeslotIDs, holdToken); err != nil {
				log.Printf("[booking] release holds: %v", err)
			}
		}
	}

	charge, err := s.gateway.Charge(ctx, &payment.ChargeRequest{
		Amount:        price,
		Currency:      "USD",
		CardNumber:    req.CardNumber,
		CardName:      req.CardName,
		ExpiryMonth:   req.ExpiryMonth,
		ExpiryYear:    req.ExpiryYear,
		CVV:           req.CVV,
		CustomerEmail: req.CustomerEmail,
		Description:   fmt.Sprintf("%s on %s", court.Name, req.Date),
	})
	if err != nil {
		releaseHolds()
		return nil, fmt.Errorf("charge: %w", err)
	}
	if !charge.Success {
		releaseHolds()
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, charge.FailureReason)
	}

	bookingID := newBookingID()
	createdAt := s.now().In(s.location)

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		// Lock the court's completed reservations so the conflict check and
		// the inserts form one atomic step against concurrent writers.
		existing, err := s.repo.FindCompletedForUpdate(ctx, tx, req.Date, req.CourtID)
		if err != nil {
			return err
		}
		if occupied := occupiedFrom(existing, req.TimeslotIDs); occupied[req.CourtID] {
			return ErrSlotConflict
		}

		for _, slotID := range req.TimeslotIDs {
			reservation := &models.Reservation{
				Date:          req.Date,
				TimeSlotID:    slotID,
				CourtID:       req.CourtID,
				CourtName:     court.Name,
				CustomerName:  req.CustomerName,
				CustomerEmail: req.CustomerEmail,
				CustomerPhone: req.CustomerPhone,
				TotalPrice:    price,
				PaymentStatus: models.PaymentCompleted,
				PaymentRef:    bookingID,
			}
			if err := s.repo.Create(ctx, tx, reservation); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The customer was charged but got no slots; undo the charge.
		if refundErr := s.gateway.Refund(ctx, charge.TransactionID); refundErr != nil {
			log.Printf("[booking] refund %s: %v", charge.TransactionID, refundErr)
		}
		releaseHolds()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	confirmation := &BookingConfirmation{
		BookingID:     bookingID,
		Date:          req.Date,
		CourtID:       req.CourtID,
		CourtName:     court.Name,
		TimeslotIDs:   req.TimeslotIDs,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		TotalPrice:    price,
		PaymentStatus: models.PaymentCompleted,
		CreatedAt:     createdAt,
	}

	if s.publisher != nil {
		if err := s.publisher.Publish("booking.created", confirmation); err != nil {
			log.Printf("[booking] publish booking.created: %v", err)
		}
	}

	// Holds on committed slots are left to their TTL; the rows own them now.
	return confirmation, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*BookingConfirmation, error) {
	rows, err := s.repo.FindByPaymentRef(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if len(rows) == 0 {
		return nil, ErrBookingNotFound
	}

	first := rows[0]
	slotIDs := make([]string, len(rows))
	for i, r := range rows {
		slotIDs[i] = r.TimeSlotID
	}

	return &BookingConfirmation{
		BookingID:     bookingID,
		Date:          first.Date,
		CourtID:       first.CourtID,
		CourtName:     first.CourtName,
		TimeslotIDs:   slotIDs,
		CustomerName:  first.CustomerName,
		CustomerEmail: first.CustomerEmail,
		TotalPrice:    first.TotalPrice,
		PaymentStatus: first.PaymentStatus,
		CreatedAt:     first.CreatedAt,
	}, nil
}

// newBookingID produces the customer-facing reference shared by every slot
// row of one payment, e.g. "BK-04927113".
func newBookingID() string {
	return fmt.Sprintf("BK-%08d", rand.Intn(100000000))
}
