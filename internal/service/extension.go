package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/logger"
	"zemo-rental-backend/internal/repository"
	"zemo-rental-backend/internal/utils"
)

const minDeclineReasonLen = 10

type extensionService struct {
	bookingRepo repository.BookingRepository
	extRepo     repository.ExtensionRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewExtensionService(
	bookingRepo repository.BookingRepository,
	extRepo repository.ExtensionRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) ExtensionService {
	return &extensionService{
		bookingRepo: bookingRepo,
		extRepo:     extRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

func extendable(status domain.BookingStatus) bool {
	return status == domain.BookingStatusConfirmed || status == domain.BookingStatusActive
}

func (s *extensionService) RequestExtension(ctx context.Context, renterID, bookingID, newEndDateStr string) (*domain.TripExtension, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsRenter(renterID) {
		return nil, domain.NewAuthorizationError()
	}
	if !extendable(b.Status) {
		return nil, domain.NewStateError("request extension", string(b.Status))
	}

	newEnd, err := utils.ParseDate(newEndDateStr)
	if err != nil {
		return nil, domain.NewValidationError("new_end_date", "expected yyyy-mm-dd")
	}
	if !newEnd.After(b.EndDate) {
		return nil, domain.NewValidationError("new_end_date", "must be after the current end date")
	}

	deltaStart := b.EndDate.AddDate(0, 0, 1)
	ext := &domain.TripExtension{
		ID:               uuid.NewString(),
		BookingID:        b.ID,
		RequestedBy:      renterID,
		OriginalEndDate:  b.EndDate,
		RequestedEndDate: newEnd,
		AdditionalDays:   utils.InclusiveDays(deltaStart, newEnd),
		Status:           domain.ExtensionStatusPending,
	}
	// The extra days are not reserved yet. Another renter can still book them
	// before the host approves; approval will then fail with a conflict.
	if err := s.extRepo.Create(ctx, ext); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "extension requested", "extension_id", ext.ID, "booking_id", b.ID, "new_end_date", newEnd.Format(utils.DateLayout))

	renter, _ := s.userRepo.GetByID(ctx, renterID)
	host, _ := s.userRepo.GetByID(ctx, b.HostID)
	vehicle, _ := s.vehicleRepo.GetByID(ctx, b.VehicleID)
	if renter != nil && host != nil && vehicle != nil {
		_ = s.emailSvc.SendExtensionRequested(ctx, host.Email, renter.Name, vehicleName(vehicle), newEnd)
		_ = s.noteRepo.Create(ctx, &domain.Notification{
			UserID:    host.ID,
			BookingID: b.ID,
			Type:      domain.NotificationExtensionRequested,
			Title:     "Trip extension requested",
			Message:   fmt.Sprintf("%s wants to keep %s until %s", renter.Name, vehicleName(vehicle), newEnd.Format(utils.DateLayout)),
			ActionURL: "/host/bookings/" + b.ID,
		})
	}
	return ext, nil
}

func (s *extensionService) ApproveExtension(ctx context.Context, hostID, extensionID string) (*domain.TripExtension, *domain.Booking, error) {
	ext, err := s.extRepo.GetByID(ctx, extensionID)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.bookingRepo.GetByID(ctx, ext.BookingID)
	if err != nil {
		return nil, nil, err
	}
	if !b.IsHost(hostID) {
		return nil, nil, domain.NewAuthorizationError()
	}
	if ext.Status != domain.ExtensionStatusPending {
		return nil, nil, domain.NewStateError("approve extension", string(ext.Status))
	}
	if !extendable(b.Status) {
		return nil, nil, domain.NewStateError("approve extension", string(b.Status))
	}

	cost := utils.ExtensionCost(b.DailyRateCents, ext.AdditionalDays)
	newTotal := b.TotalAmountCents + cost.TotalCents
	ext.RespondedBy = hostID
	event := &domain.BookingEvent{
		FromStatus: b.Status,
		ToStatus:   b.Status,
		ActorID:    hostID,
		ActorRole:  domain.ActorRoleHost,
		Reason:     fmt.Sprintf("extension approved, new end date %s", ext.RequestedEndDate.Format(utils.DateLayout)),
	}

	if err := s.bookingRepo.ApproveExtension(ctx, b, ext, newTotal, event); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			// The repository auto-declined the request; tell the renter why.
			logger.InfoContext(ctx, "extension auto-declined on conflict", "extension_id", ext.ID, "booking_id", b.ID)
			s.notifyExtensionOutcome(ctx, b, ext, domain.NotificationExtensionDeclined, "Extension declined", 0)
		}
		return ext, nil, err
	}
	logger.InfoContext(ctx, "extension approved", "extension_id", ext.ID, "booking_id", b.ID, "added_cents", cost.TotalCents)

	s.notifyExtensionOutcome(ctx, b, ext, domain.NotificationExtensionApproved, "Extension approved", cost.TotalCents)
	return ext, b, nil
}

func (s *extensionService) DeclineExtension(ctx context.Context, hostID, extensionID, reason string) (*domain.TripExtension, error) {
	if len(strings.TrimSpace(reason)) < minDeclineReasonLen {
		return nil, domain.NewValidationError("reason", fmt.Sprintf("must be at least %d characters", minDeclineReasonLen))
	}
	ext, err := s.extRepo.GetByID(ctx, extensionID)
	if err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.GetByID(ctx, ext.BookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsHost(hostID) {
		return nil, domain.NewAuthorizationError()
	}
	if ext.Status != domain.ExtensionStatusPending {
		return nil, domain.NewStateError("decline extension", string(ext.Status))
	}

	ext.RespondedBy = hostID
	ext.DeclineReason = reason
	if err := s.extRepo.Decline(ctx, ext); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "extension declined", "extension_id", ext.ID, "booking_id", b.ID)

	s.notifyExtensionOutcome(ctx, b, ext, domain.NotificationExtensionDeclined, "Extension declined", 0)
	return ext, nil
}

func (s *extensionService) ListExtensions(ctx context.Context, userID, bookingID string) ([]domain.TripExtension, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(userID) {
		return nil, domain.NewAuthorizationError()
	}
	return s.extRepo.ListByBooking(ctx, bookingID)
}

func (s *extensionService) notifyExtensionOutcome(ctx context.Context, b *domain.Booking, ext *domain.TripExtension, t domain.NotificationType, title string, addedCostCents int64) {
	renter, _ := s.userRepo.GetByID(ctx, ext.RequestedBy)
	vehicle, _ := s.vehicleRepo.GetByID(ctx, b.VehicleID)
	if renter == nil || vehicle == nil {
		return
	}
	switch t {
	case domain.NotificationExtensionApproved:
		_ = s.emailSvc.SendExtensionApproved(ctx, renter.Email, vehicleName(vehicle), ext.RequestedEndDate, addedCostCents)
	case domain.NotificationExtensionDeclined:
		_ = s.emailSvc.SendExtensionDeclined(ctx, renter.Email, vehicleName(vehicle), ext.DeclineReason)
	}
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:    renter.ID,
		BookingID: b.ID,
		Type:      t,
		Title:     title,
		Message:   fmt.Sprintf("%s: %s", title, vehicleName(vehicle)),
		ActionURL: "/bookings/" + b.ID,
	})
}
