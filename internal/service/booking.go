package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/logger"
	"zemo-rental-backend/internal/repository"
	"zemo-rental-backend/internal/utils"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

func vehicleName(v *domain.Vehicle) string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}

func confirmationNumber() string {
	return "ZM-" + strings.ToUpper(uuid.NewString()[:8])
}

func normalizePage(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func parseStatusFilter(status string) (domain.BookingStatus, error) {
	if status == "" {
		return "", nil
	}
	s := domain.BookingStatus(strings.ToUpper(status))
	switch s {
	case domain.BookingStatusPending, domain.BookingStatusConfirmed, domain.BookingStatusActive,
		domain.BookingStatusCompleted, domain.BookingStatusCancelled, domain.BookingStatusRejected:
		return s, nil
	}
	return "", domain.NewValidationError("status", "unknown booking status")
}

func (s *bookingService) CreateBooking(ctx context.Context, renterID, vehicleID, startDateStr, endDateStr, specialRequests string) (*domain.Booking, error) {
	start, err := utils.ParseDate(startDateStr)
	if err != nil {
		return nil, domain.NewValidationError("start_date", "expected yyyy-mm-dd")
	}
	end, err := utils.ParseDate(endDateStr)
	if err != nil {
		return nil, domain.NewValidationError("end_date", "expected yyyy-mm-dd")
	}
	if !end.After(start) {
		return nil, domain.NewValidationError("end_date", "must be after start date")
	}
	if start.Before(utils.Day(time.Now())) {
		return nil, domain.NewValidationError("start_date", "cannot be in the past")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Bookable() {
		return nil, domain.NewValidationError("vehicle_id", "vehicle is not open for booking")
	}
	if vehicle.HostID == renterID {
		return nil, domain.NewValidationError("vehicle_id", "cannot book your own vehicle")
	}

	price := utils.CalculateBookingPrice(vehicle.DailyRateCents, start, end)

	booking := &domain.Booking{
		ID:                 uuid.NewString(),
		ConfirmationNumber: confirmationNumber(),
		VehicleID:          vehicleID,
		RenterID:           renterID,
		HostID:             vehicle.HostID,
		StartDate:          start,
		EndDate:            end,
		Status:             domain.BookingStatusPending,
		DailyRateCents:     vehicle.DailyRateCents,
		TotalAmountCents:   price.TotalCents,
		DepositCents:       vehicle.DepositCents,
		SpecialRequests:    specialRequests,
	}
	event := &domain.BookingEvent{
		ToStatus:  domain.BookingStatusPending,
		ActorID:   renterID,
		ActorRole: domain.ActorRoleRenter,
		Reason:    "booking requested",
	}

	if err := s.bookingRepo.Create(ctx, booking, event); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "booking created", "booking_id", booking.ID, "vehicle_id", vehicleID, "renter_id", renterID)

	// Notifications are fire and forget, they never unwind the booking.
	renter, _ := s.userRepo.GetByID(ctx, renterID)
	host, _ := s.userRepo.GetByID(ctx, vehicle.HostID)
	if renter != nil && host != nil {
		_ = s.emailSvc.SendBookingRequested(ctx, host.Email, renter.Name, vehicleName(vehicle), booking.ConfirmationNumber)
		_ = s.noteRepo.Create(ctx, &domain.Notification{
			UserID:    host.ID,
			BookingID: booking.ID,
			Type:      domain.NotificationBookingRequested,
			Title:     "New booking request",
			Message:   fmt.Sprintf("%s requested your %s from %s to %s", renter.Name, vehicleName(vehicle), start.Format(utils.DateLayout), end.Format(utils.DateLayout)),
			ActionURL: "/host/bookings/" + booking.ID,
		})
	}

	return booking, nil
}

func (s *bookingService) AcceptBooking(ctx context.Context, hostID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsHost(hostID) {
		return nil, domain.NewAuthorizationError()
	}
	if b.Status != domain.BookingStatusPending {
		return nil, domain.NewStateError("accept booking", string(b.Status))
	}

	event := &domain.BookingEvent{
		FromStatus: domain.BookingStatusPending,
		ToStatus:   domain.BookingStatusConfirmed,
		ActorID:    hostID,
		ActorRole:  domain.ActorRoleHost,
		Reason:     "host accepted",
	}
	if err := s.bookingRepo.Confirm(ctx, b, event); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "booking confirmed", "booking_id", b.ID, "host_id", hostID)

	s.notifyRenter(ctx, b, domain.NotificationBookingConfirmed, "Booking confirmed", func(renterEmail, vName, hostName string) {
		_ = s.emailSvc.SendBookingConfirmed(ctx, renterEmail, vName, hostName)
	})
	return b, nil
}

func (s *bookingService) DeclineBooking(ctx context.Context, hostID, bookingID, reason string) (*domain.Booking, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.NewValidationError("reason", "a decline reason is required")
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsHost(hostID) {
		return nil, domain.NewAuthorizationError()
	}
	if b.Status != domain.BookingStatusPending {
		return nil, domain.NewStateError("decline booking", string(b.Status))
	}

	event := &domain.BookingEvent{
		ActorID:   hostID,
		ActorRole: domain.ActorRoleHost,
		Reason:    reason,
	}
	if err := s.bookingRepo.Transition(ctx, b, domain.BookingStatusRejected, event); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "booking rejected", "booking_id", b.ID, "host_id", hostID)

	s.notifyRenter(ctx, b, domain.NotificationBookingRejected, "Booking declined", func(renterEmail, vName, _ string) {
		_ = s.emailSvc.SendBookingRejected(ctx, renterEmail, vName, reason)
	})
	return b, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID, reason string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(userID) {
		return nil, domain.NewAuthorizationError()
	}
	if !b.Status.CanTransitionTo(domain.BookingStatusCancelled) {
		return nil, domain.NewStateError("cancel booking", string(b.Status))
	}

	role := domain.ActorRoleRenter
	if b.IsHost(userID) {
		role = domain.ActorRoleHost
	}
	event := &domain.BookingEvent{
		ActorID:   userID,
		ActorRole: role,
		Reason:    reason,
	}
	if err := s.bookingRepo.Transition(ctx, b, domain.BookingStatusCancelled, event); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "booking cancelled", "booking_id", b.ID, "actor_id", userID, "actor_role", role)

	// The counterparty gets the notice.
	counterparty := b.HostID
	if role == domain.ActorRoleHost {
		counterparty = b.RenterID
	}
	actor, _ := s.userRepo.GetByID(ctx, userID)
	other, _ := s.userRepo.GetByID(ctx, counterparty)
	vehicle, _ := s.vehicleRepo.GetByID(ctx, b.VehicleID)
	if actor != nil && other != nil && vehicle != nil {
		_ = s.emailSvc.SendBookingCancelled(ctx, other.Email, vehicleName(vehicle), actor.Name, reason)
		_ = s.noteRepo.Create(ctx, &domain.Notification{
			UserID:    other.ID,
			BookingID: b.ID,
			Type:      domain.NotificationBookingCancelled,
			Title:     "Booking cancelled",
			Message:   fmt.Sprintf("%s cancelled the booking for %s", actor.Name, vehicleName(vehicle)),
			ActionURL: "/bookings/" + b.ID,
		})
	}
	return b, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(userID) && !s.isAdmin(ctx, userID) {
		return nil, domain.NewAuthorizationError()
	}
	return b, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.bookingRepo.ListByRenter(ctx, renterID, st, page, pageSize)
}

func (s *bookingService) ListHostBookings(ctx context.Context, hostID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.bookingRepo.ListByHost(ctx, hostID, st, page, pageSize)
}

func (s *bookingService) ListBookingEvents(ctx context.Context, userID, bookingID string) ([]domain.BookingEvent, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(userID) && !s.isAdmin(ctx, userID) {
		return nil, domain.NewAuthorizationError()
	}
	return s.bookingRepo.ListEvents(ctx, bookingID)
}

func (s *bookingService) CheckAvailability(ctx context.Context, vehicleID, startDateStr, endDateStr string) (bool, error) {
	start, err := utils.ParseDate(startDateStr)
	if err != nil {
		return false, domain.NewValidationError("start_date", "expected yyyy-mm-dd")
	}
	end, err := utils.ParseDate(endDateStr)
	if err != nil {
		return false, domain.NewValidationError("end_date", "expected yyyy-mm-dd")
	}
	// Same-day probes are allowed here; the stricter end > start rule applies
	// only when actually creating a booking.
	if end.Before(start) {
		return false, domain.NewValidationError("end_date", "must not be before start date")
	}
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return false, err
	}
	conflict, err := s.bookingRepo.HasConflict(ctx, vehicleID, start, end, "")
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

func (s *bookingService) ForceTransition(ctx context.Context, adminID, bookingID string, to domain.BookingStatus, reason string) (*domain.Booking, error) {
	if !s.isAdmin(ctx, adminID) {
		return nil, domain.NewAuthorizationError()
	}
	if strings.TrimSpace(reason) == "" {
		return nil, domain.NewValidationError("reason", "an override reason is required")
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(to) {
		return nil, domain.NewStateError(fmt.Sprintf("move booking to %s", to), string(b.Status))
	}

	event := &domain.BookingEvent{
		FromStatus: b.Status,
		ToStatus:   to,
		ActorID:    adminID,
		ActorRole:  domain.ActorRoleAdmin,
		Reason:     reason,
	}
	if to == domain.BookingStatusConfirmed {
		err = s.bookingRepo.Confirm(ctx, b, event)
	} else {
		err = s.bookingRepo.Transition(ctx, b, to, event)
	}
	if err != nil {
		return nil, err
	}
	logger.WarnContext(ctx, "admin override transition", "booking_id", b.ID, "to", to, "admin_id", adminID, "reason", reason)
	return b, nil
}

func (s *bookingService) isAdmin(ctx context.Context, userID string) bool {
	u, err := s.userRepo.GetByID(ctx, userID)
	return err == nil && u.IsAdmin
}

// notifyRenter pushes an in-app notification plus an email to the renter
// about a host decision on the booking.
func (s *bookingService) notifyRenter(ctx context.Context, b *domain.Booking, t domain.NotificationType, title string, sendEmail func(renterEmail, vehicleName, hostName string)) {
	renter, _ := s.userRepo.GetByID(ctx, b.RenterID)
	host, _ := s.userRepo.GetByID(ctx, b.HostID)
	vehicle, _ := s.vehicleRepo.GetByID(ctx, b.VehicleID)
	if renter == nil || host == nil || vehicle == nil {
		return
	}
	sendEmail(renter.Email, vehicleName(vehicle), host.Name)
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:    renter.ID,
		BookingID: b.ID,
		Type:      t,
		Title:     title,
		Message:   fmt.Sprintf("%s: %s", title, vehicleName(vehicle)),
		ActionURL: "/bookings/" + b.ID,
	})
}
