package database

import (
	"log"

	"github.com/courtly/courtly/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Reservation{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: at most one completed reservation per court slot.
	// This is the insert-if-absent primitive backing the conflict check.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_slot
		ON reservations (date, time_slot_id, court_id)
		WHERE payment_status = 'completed'
	`)

	return db
}
