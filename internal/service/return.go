package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/logger"
	"zemo-rental-backend/internal/repository"
	"zemo-rental-backend/internal/utils"
)

// refuelFullTankCents is charged pro rata when the vehicle comes back with
// less fuel than it left with.
const refuelFullTankCents = 75_00

type returnService struct {
	bookingRepo repository.BookingRepository
	inspRepo    repository.InspectionRepository
	lateRepo    repository.LateReturnRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewReturnService(
	bookingRepo repository.BookingRepository,
	inspRepo repository.InspectionRepository,
	lateRepo repository.LateReturnRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) ReturnService {
	return &returnService{
		bookingRepo: bookingRepo,
		inspRepo:    inspRepo,
		lateRepo:    lateRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

func validateInspectionReadings(mileage int32, fuelLevel float64) error {
	if mileage < 0 {
		return domain.NewValidationError("mileage", "must not be negative")
	}
	if fuelLevel < 0 || fuelLevel > 1 {
		return domain.NewValidationError("fuel_level", "must be between 0 and 1")
	}
	return nil
}

func (s *returnService) RecordPickupInspection(ctx context.Context, actorID, bookingID string, input PickupInspectionInput) (*domain.Inspection, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actorID) {
		return nil, domain.NewAuthorizationError()
	}
	if b.Status != domain.BookingStatusConfirmed && b.Status != domain.BookingStatusActive {
		return nil, domain.NewStateError("record pickup inspection", string(b.Status))
	}
	if err := validateInspectionReadings(input.Mileage, input.FuelLevel); err != nil {
		return nil, err
	}
	if existing, err := s.inspRepo.GetByBookingAndType(ctx, bookingID, domain.InspectionTypePickup); err == nil && existing != nil {
		return nil, domain.NewConflictError("pickup inspection already recorded")
	}

	assessment, err := utils.AssessDamage(input.DamageItems, input.OverallCondition)
	if err != nil {
		return nil, err
	}

	insp := &domain.Inspection{
		ID:               uuid.NewString(),
		BookingID:        b.ID,
		VehicleID:        b.VehicleID,
		InspectorID:      actorID,
		Type:             domain.InspectionTypePickup,
		Mileage:          input.Mileage,
		FuelLevel:        input.FuelLevel,
		Notes:            input.Notes,
		OverallCondition: input.OverallCondition,
		DamageItems:      input.DamageItems,
		DamageScore:      assessment.TotalScore,
		AdjustedScore:    assessment.AdjustedScore,
		RiskLevel:        assessment.RiskLevel,
		RepairCostCents:  assessment.TotalRepairCostCents,
	}
	if err := s.inspRepo.Create(ctx, insp); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "pickup inspection recorded", "booking_id", b.ID, "inspector_id", actorID, "mileage", input.Mileage)
	return insp, nil
}

func (s *returnService) ProcessReturn(ctx context.Context, actorID, bookingID string, input ReturnInput) (*domain.Inspection, *domain.DepositAdjustment, *domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !b.IsParty(actorID) {
		return nil, nil, nil, domain.NewAuthorizationError()
	}
	if b.Status != domain.BookingStatusActive {
		return nil, nil, nil, domain.NewStateError("process return", string(b.Status))
	}
	if err := validateInspectionReadings(input.Mileage, input.FuelLevel); err != nil {
		return nil, nil, nil, err
	}
	if input.CleaningChargesCents < 0 || input.OtherChargesCents < 0 {
		return nil, nil, nil, domain.NewValidationError("charges", "must not be negative")
	}

	pickup, err := s.inspRepo.GetByBookingAndType(ctx, bookingID, domain.InspectionTypePickup)
	if err != nil {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, nil, err
		}
		pickup = nil
	}
	if pickup != nil && input.Mileage < pickup.Mileage {
		return nil, nil, nil, domain.NewValidationError("mileage", "below the mileage recorded at pickup")
	}

	assessment, err := utils.AssessDamage(input.DamageItems, input.OverallCondition)
	if err != nil {
		return nil, nil, nil, err
	}

	insp := &domain.Inspection{
		ID:               uuid.NewString(),
		BookingID:        b.ID,
		VehicleID:        b.VehicleID,
		InspectorID:      actorID,
		Type:             domain.InspectionTypeReturn,
		Mileage:          input.Mileage,
		FuelLevel:        input.FuelLevel,
		Notes:            input.Notes,
		OverallCondition: input.OverallCondition,
		DamageItems:      input.DamageItems,
		DamageScore:      assessment.TotalScore,
		AdjustedScore:    assessment.AdjustedScore,
		RiskLevel:        assessment.RiskLevel,
		RepairCostCents:  assessment.TotalRepairCostCents,
	}
	if err := s.inspRepo.Create(ctx, insp); err != nil {
		return nil, nil, nil, err
	}

	var fuelCharges int64
	if pickup != nil && input.FuelLevel < pickup.FuelLevel {
		fuelCharges = int64((pickup.FuelLevel - input.FuelLevel) * refuelFullTankCents)
	}

	// Unpaid late fees ride along as other charges and the late-return case
	// closes with the trip.
	otherCharges := input.OtherChargesCents
	if lr, lerr := s.lateRepo.GetOpenByBooking(ctx, bookingID); lerr == nil && lr != nil {
		otherCharges += lr.TotalLateFeeCents
	}

	var damageCharges int64
	if len(input.DamageItems) > 0 {
		damageCharges = assessment.TotalRepairCostCents
	}

	var adj *domain.DepositAdjustment
	totalCharges := damageCharges + input.CleaningChargesCents + fuelCharges + otherCharges
	if totalCharges > 0 {
		adjustment, finalReturn := utils.SettleDeposit(b.DepositCents, damageCharges, input.CleaningChargesCents, fuelCharges, otherCharges)
		adj = &domain.DepositAdjustment{
			ID:                   uuid.NewString(),
			BookingID:            b.ID,
			InspectionID:         insp.ID,
			OriginalDepositCents: b.DepositCents,
			DamageChargesCents:   damageCharges,
			CleaningChargesCents: input.CleaningChargesCents,
			FuelChargesCents:     fuelCharges,
			OtherChargesCents:    otherCharges,
			AdjustmentCents:      adjustment,
			FinalReturnCents:     finalReturn,
			Justification:        input.Justification,
		}
		if err := s.inspRepo.CreateAdjustment(ctx, adj); err != nil {
			return nil, nil, nil, err
		}
	}

	role := domain.ActorRoleRenter
	if b.IsHost(actorID) {
		role = domain.ActorRoleHost
	}
	event := &domain.BookingEvent{
		ActorID:   actorID,
		ActorRole: role,
		Reason:    "vehicle returned",
	}
	if err := s.bookingRepo.Transition(ctx, b, domain.BookingStatusCompleted, event); err != nil {
		return nil, nil, nil, err
	}
	_ = s.lateRepo.Resolve(ctx, bookingID)
	logger.InfoContext(ctx, "booking completed", "booking_id", b.ID, "charges_cents", totalCharges)

	finalReturn := b.DepositCents
	if adj != nil {
		finalReturn = adj.FinalReturnCents
	}
	renter, _ := s.userRepo.GetByID(ctx, b.RenterID)
	host, _ := s.userRepo.GetByID(ctx, b.HostID)
	vehicle, _ := s.vehicleRepo.GetByID(ctx, b.VehicleID)
	if renter != nil && host != nil && vehicle != nil {
		_ = s.emailSvc.SendBookingCompleted(ctx, renter.Email, vehicleName(vehicle), finalReturn)
		_ = s.emailSvc.SendBookingCompleted(ctx, host.Email, vehicleName(vehicle), finalReturn)
		for _, userID := range []string{renter.ID, host.ID} {
			_ = s.noteRepo.Create(ctx, &domain.Notification{
				UserID:    userID,
				BookingID: b.ID,
				Type:      domain.NotificationBookingCompleted,
				Title:     "Trip completed",
				Message:   fmt.Sprintf("Trip with %s is complete", vehicleName(vehicle)),
				ActionURL: "/bookings/" + b.ID,
			})
		}
	}
	return insp, adj, b, nil
}

func (s *returnService) ListAdjustments(ctx context.Context, userID, bookingID string) ([]domain.DepositAdjustment, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(userID) && !s.isAdmin(ctx, userID) {
		return nil, domain.NewAuthorizationError()
	}
	return s.inspRepo.ListAdjustments(ctx, bookingID)
}

func (s *returnService) isAdmin(ctx context.Context, userID string) bool {
	u, err := s.userRepo.GetByID(ctx, userID)
	return err == nil && u.IsAdmin
}
