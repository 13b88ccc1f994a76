package repository

import (
	"context"
	"time"

	"zemo-rental-backend/internal/domain"
)

// BookingRepository persists bookings and their audit events. Every method
// that moves a booking into (or keeps it in) a live, reserved state performs
// its conflict check and its write inside one database transaction with the
// vehicle's live rows locked — check-then-act across two calls is not enough,
// two concurrent accepts could both pass the check before either commits.
type BookingRepository interface {
	// Create conflict-checks the requested range against the vehicle's live
	// bookings and inserts the new PENDING booking plus its creation event
	// atomically. Returns *domain.ConflictError when an overlap exists.
	Create(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error

	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// FindConflicts returns the live bookings on vehicleID overlapping the
	// inclusive range [start, end], excluding excludeBookingID when non-empty.
	FindConflicts(ctx context.Context, vehicleID string, start, end time.Time, statuses []domain.BookingStatus, excludeBookingID string) ([]domain.Booking, error)

	// HasConflict is FindConflicts collapsed to existence, for availability
	// probes that do not need the rows.
	HasConflict(ctx context.Context, vehicleID string, start, end time.Time, excludeBookingID string) (bool, error)

	// Confirm moves a PENDING booking to CONFIRMED after re-running the
	// conflict check under lock. The booking stays PENDING on conflict.
	Confirm(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error

	// Transition is a guarded compare-and-set on status for operations that
	// only shrink or close the reserved range (decline, cancel, complete).
	// No conflict check. Returns *domain.StateError if the booking is no
	// longer in b.Status.
	Transition(ctx context.Context, b *domain.Booking, to domain.BookingStatus, event *domain.BookingEvent) error

	// ApproveExtension atomically conflict-checks the extension's delta range
	// (excluding the parent booking), pushes the parent's end date and total,
	// and resolves the extension to APPROVED. The parent write is a guarded
	// compare-and-set on CONFIRMED/ACTIVE; a booking cancelled since the
	// caller's read yields *domain.StateError with nothing committed. On date
	// conflict the extension is declined instead and *domain.ConflictError
	// returned.
	ApproveExtension(ctx context.Context, b *domain.Booking, ext *domain.TripExtension, newTotalCents int64, event *domain.BookingEvent) error

	ListByRenter(ctx context.Context, renterID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByHost(ctx context.Context, hostID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
	ListEvents(ctx context.Context, bookingID string) ([]domain.BookingEvent, error)
}

type ExtensionRepository interface {
	// Create inserts a PENDING extension, guaranteeing at most one pending
	// extension per booking (the parent booking row is locked for the check,
	// and its status is re-validated under that lock). Returns
	// *domain.ConflictError when another extension is already pending and
	// *domain.StateError when the parent is no longer CONFIRMED or ACTIVE.
	Create(ctx context.Context, ext *domain.TripExtension) error

	GetByID(ctx context.Context, id string) (*domain.TripExtension, error)

	// Decline resolves a PENDING extension to DECLINED. Guarded: returns
	// *domain.StateError if the extension is no longer pending.
	Decline(ctx context.Context, ext *domain.TripExtension) error

	ListByBooking(ctx context.Context, bookingID string) ([]domain.TripExtension, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
}

// LateReturnRepository backs the overdue sweep. One open row per booking at
// most; the sweep updates it in place as hours accumulate.
type LateReturnRepository interface {
	// FindOverdueActive returns ACTIVE bookings whose end date passed before
	// cutoff.
	FindOverdueActive(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	GetOpenByBooking(ctx context.Context, bookingID string) (*domain.LateReturn, error)
	Create(ctx context.Context, lr *domain.LateReturn) error
	Update(ctx context.Context, lr *domain.LateReturn) error
	// Resolve closes any open row for the booking, typically at return.
	Resolve(ctx context.Context, bookingID string) error
}

type InspectionRepository interface {
	Create(ctx context.Context, insp *domain.Inspection) error
	GetByBookingAndType(ctx context.Context, bookingID string, t domain.InspectionType) (*domain.Inspection, error)
	CreateAdjustment(ctx context.Context, adj *domain.DepositAdjustment) error
	ListAdjustments(ctx context.Context, bookingID string) ([]domain.DepositAdjustment, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int64, userID string) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
