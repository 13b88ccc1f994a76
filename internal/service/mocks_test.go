package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"zemo-rental-backend/internal/domain"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error {
	args := m.Called(ctx, b, event)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) FindConflicts(ctx context.Context, vehicleID string, start, end time.Time, statuses []domain.BookingStatus, excludeBookingID string) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, start, end, statuses, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) HasConflict(ctx context.Context, vehicleID string, start, end time.Time, excludeBookingID string) (bool, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeBookingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) Confirm(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error {
	args := m.Called(ctx, b, event)
	return args.Error(0)
}
func (m *MockBookingRepo) Transition(ctx context.Context, b *domain.Booking, to domain.BookingStatus, event *domain.BookingEvent) error {
	args := m.Called(ctx, b, to, event)
	return args.Error(0)
}
func (m *MockBookingRepo) ApproveExtension(ctx context.Context, b *domain.Booking, ext *domain.TripExtension, newTotalCents int64, event *domain.BookingEvent) error {
	args := m.Called(ctx, b, ext, newTotalCents, event)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByHost(ctx context.Context, hostID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, hostID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListEvents(ctx context.Context, bookingID string) ([]domain.BookingEvent, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.BookingEvent), args.Error(1)
}

// MockExtensionRepo
type MockExtensionRepo struct {
	mock.Mock
}

func (m *MockExtensionRepo) Create(ctx context.Context, ext *domain.TripExtension) error {
	args := m.Called(ctx, ext)
	return args.Error(0)
}
func (m *MockExtensionRepo) GetByID(ctx context.Context, id string) (*domain.TripExtension, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripExtension), args.Error(1)
}
func (m *MockExtensionRepo) Decline(ctx context.Context, ext *domain.TripExtension) error {
	args := m.Called(ctx, ext)
	return args.Error(0)
}
func (m *MockExtensionRepo) ListByBooking(ctx context.Context, bookingID string) ([]domain.TripExtension, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.TripExtension), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id int64, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockInspectionRepo
type MockInspectionRepo struct {
	mock.Mock
}

func (m *MockInspectionRepo) Create(ctx context.Context, insp *domain.Inspection) error {
	args := m.Called(ctx, insp)
	return args.Error(0)
}
func (m *MockInspectionRepo) GetByBookingAndType(ctx context.Context, bookingID string, t domain.InspectionType) (*domain.Inspection, error) {
	args := m.Called(ctx, bookingID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}
func (m *MockInspectionRepo) CreateAdjustment(ctx context.Context, adj *domain.DepositAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}
func (m *MockInspectionRepo) ListAdjustments(ctx context.Context, bookingID string) ([]domain.DepositAdjustment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.DepositAdjustment), args.Error(1)
}

// MockLateReturnRepo
type MockLateReturnRepo struct {
	mock.Mock
}

func (m *MockLateReturnRepo) FindOverdueActive(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockLateReturnRepo) GetOpenByBooking(ctx context.Context, bookingID string) (*domain.LateReturn, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateReturn), args.Error(1)
}
func (m *MockLateReturnRepo) Create(ctx context.Context, lr *domain.LateReturn) error {
	args := m.Called(ctx, lr)
	return args.Error(0)
}
func (m *MockLateReturnRepo) Update(ctx context.Context, lr *domain.LateReturn) error {
	args := m.Called(ctx, lr)
	return args.Error(0)
}
func (m *MockLateReturnRepo) Resolve(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequested(ctx context.Context, hostEmail, renterName, vehicleName, confirmationNumber string) error {
	args := m.Called(ctx, hostEmail, renterName, vehicleName, confirmationNumber)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, renterEmail, vehicleName, hostName string) error {
	args := m.Called(ctx, renterEmail, vehicleName, hostName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRejected(ctx context.Context, renterEmail, vehicleName, reason string) error {
	args := m.Called(ctx, renterEmail, vehicleName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, email, vehicleName, cancelledBy, reason string) error {
	args := m.Called(ctx, email, vehicleName, cancelledBy, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCompleted(ctx context.Context, email, vehicleName string, finalReturnCents int64) error {
	args := m.Called(ctx, email, vehicleName, finalReturnCents)
	return args.Error(0)
}
func (m *MockEmailService) SendExtensionRequested(ctx context.Context, hostEmail, renterName, vehicleName string, newEndDate time.Time) error {
	args := m.Called(ctx, hostEmail, renterName, vehicleName, newEndDate)
	return args.Error(0)
}
func (m *MockEmailService) SendExtensionApproved(ctx context.Context, renterEmail, vehicleName string, newEndDate time.Time, addedCostCents int64) error {
	args := m.Called(ctx, renterEmail, vehicleName, newEndDate, addedCostCents)
	return args.Error(0)
}
func (m *MockEmailService) SendExtensionDeclined(ctx context.Context, renterEmail, vehicleName, reason string) error {
	args := m.Called(ctx, renterEmail, vehicleName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendLateReturnAlert(ctx context.Context, email, vehicleName string, hoursLate int, feeCents int64) error {
	args := m.Called(ctx, email, vehicleName, hoursLate, feeCents)
	return args.Error(0)
}
