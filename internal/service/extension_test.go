package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"zemo-rental-backend/internal/domain"
)

type extensionServiceMocks struct {
	bookingRepo *MockBookingRepo
	extRepo     *MockExtensionRepo
	vehicleRepo *MockVehicleRepo
	userRepo    *MockUserRepo
	noteRepo    *MockNotificationRepo
	emailSvc    *MockEmailService
}

func newTestExtensionService() (ExtensionService, *extensionServiceMocks) {
	m := &extensionServiceMocks{
		bookingRepo: new(MockBookingRepo),
		extRepo:     new(MockExtensionRepo),
		vehicleRepo: new(MockVehicleRepo),
		userRepo:    new(MockUserRepo),
		noteRepo:    new(MockNotificationRepo),
		emailSvc:    new(MockEmailService),
	}
	svc := NewExtensionService(m.bookingRepo, m.extRepo, m.vehicleRepo, m.userRepo, m.noteRepo, m.emailSvc)
	return svc, m
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:               "booking-1",
		VehicleID:        "vehicle-1",
		RenterID:         "renter-1",
		HostID:           "host-1",
		StartDate:        time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
		Status:           domain.BookingStatusConfirmed,
		DailyRateCents:   40_00,
		TotalAmountCents: 252_00,
		DepositCents:     500_00,
	}
}

func pendingExtension() *domain.TripExtension {
	return &domain.TripExtension{
		ID:               "ext-1",
		BookingID:        "booking-1",
		RequestedBy:      "renter-1",
		OriginalEndDate:  time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
		RequestedEndDate: time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC),
		AdditionalDays:   2,
		Status:           domain.ExtensionStatusPending,
	}
}

func TestRequestExtension(t *testing.T) {
	ctx := context.Background()

	t.Run("renter requests more days", func(t *testing.T) {
		svc, m := newTestExtensionService()
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.extRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.userRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.NewNotFoundError("user", "x"))

		ext, err := svc.RequestExtension(ctx, "renter-1", "booking-1", "2026-06-16")
		assert.NoError(t, err)
		assert.Equal(t, domain.ExtensionStatusPending, ext.Status)
		assert.Equal(t, 2, ext.AdditionalDays)
		assert.Equal(t, confirmedBooking().EndDate, ext.OriginalEndDate)
	})

	t.Run("only the renter may request", func(t *testing.T) {
		svc, m := newTestExtensionService()
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		_, err := svc.RequestExtension(ctx, "host-1", "booking-1", "2026-06-16")
		var authz *domain.AuthorizationError
		assert.ErrorAs(t, err, &authz)
	})

	t.Run("pending and terminal bookings cannot be extended", func(t *testing.T) {
		svc, m := newTestExtensionService()
		for _, st := range []domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusCompleted, domain.BookingStatusCancelled} {
			m.bookingRepo.ExpectedCalls = nil
			b := confirmedBooking()
			b.Status = st
			m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(b, nil)
			_, err := svc.RequestExtension(ctx, "renter-1", "booking-1", "2026-06-16")
			var state *domain.StateError
			assert.ErrorAs(t, err, &state, "%s", st)
		}
	})

	t.Run("new end must push the range forward", func(t *testing.T) {
		svc, m := newTestExtensionService()
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		for _, newEnd := range []string{"2026-06-14", "2026-06-12"} {
			_, err := svc.RequestExtension(ctx, "renter-1", "booking-1", newEnd)
			var validation *domain.ValidationError
			assert.ErrorAs(t, err, &validation, "%s", newEnd)
		}
	})

	t.Run("a second pending request is refused", func(t *testing.T) {
		svc, m := newTestExtensionService()
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.extRepo.On("Create", mock.Anything, mock.Anything).
			Return(domain.NewConflictError("a pending extension already exists for this booking"))
		_, err := svc.RequestExtension(ctx, "renter-1", "booking-1", "2026-06-16")
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}

func TestApproveExtension(t *testing.T) {
	ctx := context.Background()

	t.Run("approval extends the booking and reprices it", func(t *testing.T) {
		svc, m := newTestExtensionService()
		m.extRepo.On("GetByID", mock.Anything, "ext-1").Return(pendingExtension(), nil)
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		// 2 extra days at 40.00 -> 80.00 + 8.00 fee + 12.80 tax = 100.80.
		m.bookingRepo.On("ApproveExtension", mock.Anything, mock.Anything, mock.Anything, int64(252_00+100_80), mock.Anything).Return(nil)
		m.userRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.NewNotFoundError("user", "x"))

		ext, b, err := svc.ApproveExtension(ctx, "host-1", "ext-1")
		assert.NoError(t, err)
		assert.Equal(t, "host-1", ext.RespondedBy)
		assert.NotNil(t, b)
		m.bookingRepo.AssertExpectations(t)
	})

	t.Run("only the host may approve", func(t *testing.T) {
		svc, m := newTestExtensionService()
		m.extRepo.On("GetByID", mock.Anything, "ext-1").Return(pendingExtension(), nil)
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		_, _, err := svc.ApproveExtension(ctx, "renter-1", "ext-1")
		var authz *domain.AuthorizationError
		assert.ErrorAs(t, err, &authz)
	})

	t.Run("resolved extensions are immutable", func(t *testing.T) {
		svc, m := newTestExtensionService()
		ext := pendingExtension()
		ext.Status = domain.ExtensionStatusDeclined
		m.extRepo.On("GetByID", mock.Anything, "ext-1").Return(ext, nil)
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		_, _, err := svc.ApproveExtension(ctx, "host-1", "ext-1")
		var state *domain.StateError
		assert.ErrorAs(t, err, &state)
	})

	t.Run("a conflicting booking auto-declines the request", func(t *testing.T) {
		svc, m := newTestExtensionService()
		m.extRepo.On("GetByID", mock.Anything, "ext-1").Return(pendingExtension(), nil)
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.bookingRepo.On("ApproveExtension", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.NewConflictError("requested dates are no longer available"))
		m.userRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.NewNotFoundError("user", "x"))

		ext, b, err := svc.ApproveExtension(ctx, "host-1", "ext-1")
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.NotNil(t, ext)
		assert.Nil(t, b)
	})
}

func TestDeclineExtension(t *testing.T) {
	ctx := context.Background()

	t.Run("reason must carry some substance", func(t *testing.T) {
		svc, _ := newTestExtensionService()
		_, err := svc.DeclineExtension(ctx, "host-1", "ext-1", "no")
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("host declines with a reason", func(t *testing.T) {
		svc, m := newTestExtensionService()
		m.extRepo.On("GetByID", mock.Anything, "ext-1").Return(pendingExtension(), nil)
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.extRepo.On("Decline", mock.Anything, mock.Anything).Return(nil)
		m.userRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.NewNotFoundError("user", "x"))

		ext, err := svc.DeclineExtension(ctx, "host-1", "ext-1", "the car is booked right after")
		assert.NoError(t, err)
		assert.Equal(t, "host-1", ext.RespondedBy)
		assert.Equal(t, "the car is booked right after", ext.DeclineReason)
	})

	t.Run("declining twice is a state error", func(t *testing.T) {
		svc, m := newTestExtensionService()
		ext := pendingExtension()
		ext.Status = domain.ExtensionStatusApproved
		m.extRepo.On("GetByID", mock.Anything, "ext-1").Return(ext, nil)
		m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		_, err := svc.DeclineExtension(ctx, "host-1", "ext-1", "the car is booked right after")
		var state *domain.StateError
		assert.ErrorAs(t, err, &state)
	})
}

func TestListExtensions(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestExtensionService()

	m.bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
	m.extRepo.On("ListByBooking", mock.Anything, "booking-1").Return([]domain.TripExtension{*pendingExtension()}, nil)

	exts, err := svc.ListExtensions(ctx, "renter-1", "booking-1")
	assert.NoError(t, err)
	assert.Len(t, exts, 1)

	_, err = svc.ListExtensions(ctx, "stranger", "booking-1")
	var authz *domain.AuthorizationError
	assert.ErrorAs(t, err, &authz)
}
