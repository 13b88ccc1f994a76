package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/logger"
	"zemo-rental-backend/internal/utils"
)

// ActivateDueBookings moves CONFIRMED bookings whose start date has arrived
// into ACTIVE. The transition goes through the repository so the audit trail
// gets its SYSTEM-attributed event.
func (jr *JobRunner) ActivateDueBookings() {
	jr.runWithRecovery("ActivateDueBookings", func() {
		ctx := context.Background()
		today := utils.Day(time.Now())

		query := `SELECT id FROM bookings WHERE status = $1 AND start_date <= $2`
		rows, err := jr.store.DB().QueryContext(ctx, query, domain.BookingStatusConfirmed, today)
		if err != nil {
			logger.Error("Failed to find due bookings", "error", err)
			return
		}
		defer rows.Close()

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan due booking", "error", err)
				continue
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating due bookings", "error", err)
			return
		}

		count := 0
		for _, id := range ids {
			b, err := jr.store.BookingRepository.GetByID(ctx, id)
			if err != nil {
				logger.Error("Failed to load due booking", "booking_id", id, "error", err)
				continue
			}
			event := &domain.BookingEvent{
				ActorID:   "system",
				ActorRole: domain.ActorRoleSystem,
				Reason:    "trip start date reached",
			}
			if err := jr.store.BookingRepository.Transition(ctx, b, domain.BookingStatusActive, event); err != nil {
				// Lost a race with a cancel; nothing to do.
				logger.Debug("Skipped activation", "booking_id", id, "error", err)
				continue
			}
			count++
		}
		logger.Info("Activated due bookings", "count", count)
	})
}

// CheckLateReturns finds ACTIVE bookings past their due-back time, accrues
// late fees, and alerts both parties. A trip is due back at midnight after
// its inclusive end date; the grace period applies on top of that.
func (jr *JobRunner) CheckLateReturns() {
	jr.runWithRecovery("CheckLateReturns", func() {
		ctx := context.Background()
		now := time.Now().UTC()
		grace := time.Duration(jr.config.LateFees.GraceMinutes) * time.Minute

		// end_date < cutoff means end_date + 24h + grace < now.
		cutoff := now.Add(-24*time.Hour - grace)
		overdue, err := jr.store.LateReturnRepository.FindOverdueActive(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to find overdue bookings", "error", err)
			return
		}

		for _, b := range overdue {
			jr.processLateReturn(ctx, &b, now)
		}
		logger.Info("Checked late returns", "overdue", len(overdue))
	})
}

func (jr *JobRunner) processLateReturn(ctx context.Context, b *domain.Booking, now time.Time) {
	dueBack := b.EndDate.AddDate(0, 0, 1)
	hoursLate := int(now.Sub(dueBack).Hours())
	if hoursLate < 1 {
		hoursLate = 1
	}

	vehicle, err := jr.store.VehicleRepository.GetByID(ctx, b.VehicleID)
	if err != nil {
		logger.Error("Failed to load vehicle for late return", "booking_id", b.ID, "error", err)
		return
	}
	hourlyFee := vehicle.LateFeeCentsPerHr
	if hourlyFee == 0 {
		hourlyFee = b.DailyRateCents / 24
	}

	totalFee := hourlyFee * int64(hoursLate)
	capped := false
	if hoursLate >= jr.config.LateFees.CapAfterHours || totalFee > b.DailyRateCents {
		totalFee = b.DailyRateCents
		capped = true
	}
	escalate := hoursLate >= jr.config.LateFees.EscalateAfterHrs

	lr, err := jr.store.LateReturnRepository.GetOpenByBooking(ctx, b.ID)
	firstDetection := err != nil
	if firstDetection {
		lr = &domain.LateReturn{
			ID:              uuid.NewString(),
			BookingID:       b.ID,
			OriginalEndDate: b.EndDate,
			HourlyFeeCents:  hourlyFee,
			Status:          domain.LateReturnDetected,
		}
	}

	newlyEscalated := escalate && !lr.Escalated
	lr.HoursLate = hoursLate
	lr.TotalLateFeeCents = totalFee
	lr.Capped = capped
	if escalate {
		lr.Escalated = true
		lr.Status = domain.LateReturnEscalated
	}

	if firstDetection {
		err = jr.store.LateReturnRepository.Create(ctx, lr)
	} else {
		err = jr.store.LateReturnRepository.Update(ctx, lr)
	}
	if err != nil {
		logger.Error("Failed to record late return", "booking_id", b.ID, "error", err)
		return
	}

	// Alert on first detection and again on escalation, not every sweep.
	if !firstDetection && !newlyEscalated {
		return
	}
	vName := fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model)
	for _, userID := range []string{b.RenterID, b.HostID} {
		u, uerr := jr.store.UserRepository.GetByID(ctx, userID)
		if uerr != nil {
			continue
		}
		_ = jr.services.Email.SendLateReturnAlert(ctx, u.Email, vName, hoursLate, totalFee)
		_ = jr.store.NotificationRepository.Create(ctx, &domain.Notification{
			UserID:    userID,
			BookingID: b.ID,
			Type:      domain.NotificationLateReturn,
			Title:     "Late return",
			Message:   fmt.Sprintf("%s is %d hour(s) overdue", vName, hoursLate),
			ActionURL: "/bookings/" + b.ID,
		})
	}
	if firstDetection && !escalate {
		lr.Status = domain.LateReturnNotified
		_ = jr.store.LateReturnRepository.Update(ctx, lr)
	}
	logger.Warn("Late return recorded", "booking_id", b.ID, "hours_late", hoursLate, "fee_cents", totalFee, "escalated", escalate)
}
