package postgres

import (
	"database/sql"

	"zemo-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.ExtensionRepository
	repository.VehicleRepository
	repository.LateReturnRepository
	repository.InspectionRepository
	repository.NotificationRepository
	repository.UserRepository
}

// DB exposes the underlying handle for callers that run their own queries,
// such as the sweep jobs.
func (s *Store) DB() *sql.DB {
	return s.db
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		BookingRepository:      NewBookingRepository(db),
		ExtensionRepository:    NewExtensionRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		LateReturnRepository:   NewLateReturnRepository(db),
		InspectionRepository:   NewInspectionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		UserRepository:         NewUserRepository(db),
	}
}
