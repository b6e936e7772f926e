package repository

import (
	"context"

	"github.com/courtly/courtly/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindCompletedByDate(ctx context.Context, date string) ([]models.Reservation, error)
	FindCompletedForUpdate(ctx context.Context, tx *gorm.DB, date, courtID string) ([]models.Reservation, error)
	FindByPaymentRef(ctx context.Context, ref string) ([]models.Reservation, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindCompletedByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("date = ? AND payment_status = ?", date, models.PaymentCompleted).
		Order("id ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindCompletedForUpdate locks the court's completed reservations for the date
// so the conflict check and the insert happen under one row-level lock.
func (r *reservationRepository) FindCompletedForUpdate(ctx context.Context, tx *gorm.DB, date, courtID string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ? AND court_id = ? AND payment_status = ?", date, courtID, models.PaymentCompleted).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByPaymentRef(ctx context.Context, ref string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("payment_ref = ?", ref).
		Order("time_slot_id ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}
