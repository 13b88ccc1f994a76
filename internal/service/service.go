package service

import (
	"context"
	"time"

	"zemo-rental-backend/internal/domain"
)

type BookingService interface {
	CreateBooking(ctx context.Context, renterID, vehicleID, startDate, endDate, specialRequests string) (*domain.Booking, error)
	AcceptBooking(ctx context.Context, hostID, bookingID string) (*domain.Booking, error)
	DeclineBooking(ctx context.Context, hostID, bookingID, reason string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID, reason string) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListHostBookings(ctx context.Context, hostID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListBookingEvents(ctx context.Context, userID, bookingID string) ([]domain.BookingEvent, error)
	CheckAvailability(ctx context.Context, vehicleID, startDate, endDate string) (bool, error)
	// ForceTransition is the admin override. It still obeys the transition
	// table; what it bypasses is the role gate, never the state machine.
	ForceTransition(ctx context.Context, adminID, bookingID string, to domain.BookingStatus, reason string) (*domain.Booking, error)
}

type ExtensionService interface {
	RequestExtension(ctx context.Context, renterID, bookingID, newEndDate string) (*domain.TripExtension, error)
	ApproveExtension(ctx context.Context, hostID, extensionID string) (*domain.TripExtension, *domain.Booking, error)
	DeclineExtension(ctx context.Context, hostID, extensionID, reason string) (*domain.TripExtension, error)
	ListExtensions(ctx context.Context, userID, bookingID string) ([]domain.TripExtension, error)
}

// PickupInspectionInput captures the vehicle state handed to the renter.
type PickupInspectionInput struct {
	Mileage          int32
	FuelLevel        float64
	Notes            string
	OverallCondition domain.VehicleCondition
	DamageItems      []domain.DamageItem
}

// ReturnInput captures the vehicle state handed back plus any non-damage
// charges the host claims against the deposit.
type ReturnInput struct {
	Mileage              int32
	FuelLevel            float64
	Notes                string
	OverallCondition     domain.VehicleCondition
	DamageItems          []domain.DamageItem
	CleaningChargesCents int64
	OtherChargesCents    int64
	Justification        string
}

type ReturnService interface {
	RecordPickupInspection(ctx context.Context, actorID, bookingID string, input PickupInspectionInput) (*domain.Inspection, error)
	// ProcessReturn records the return inspection, settles the deposit, and
	// completes the booking. The adjustment is nil when no charges accrued.
	ProcessReturn(ctx context.Context, actorID, bookingID string, input ReturnInput) (*domain.Inspection, *domain.DepositAdjustment, *domain.Booking, error)
	ListAdjustments(ctx context.Context, userID, bookingID string) ([]domain.DepositAdjustment, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID string, notificationID int64) error
}

type EmailService interface {
	SendBookingRequested(ctx context.Context, hostEmail, renterName, vehicleName, confirmationNumber string) error
	SendBookingConfirmed(ctx context.Context, renterEmail, vehicleName, hostName string) error
	SendBookingRejected(ctx context.Context, renterEmail, vehicleName, reason string) error
	SendBookingCancelled(ctx context.Context, email, vehicleName, cancelledBy, reason string) error
	SendBookingCompleted(ctx context.Context, email, vehicleName string, finalReturnCents int64) error
	SendExtensionRequested(ctx context.Context, hostEmail, renterName, vehicleName string, newEndDate time.Time) error
	SendExtensionApproved(ctx context.Context, renterEmail, vehicleName string, newEndDate time.Time, addedCostCents int64) error
	SendExtensionDeclined(ctx context.Context, renterEmail, vehicleName, reason string) error
	SendLateReturnAlert(ctx context.Context, email, vehicleName string, hoursLate int, feeCents int64) error
}
