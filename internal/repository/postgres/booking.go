package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/repository"
)

const bookingCols = `id, confirmation_number, vehicle_id, renter_id, host_id, start_date, end_date, status, daily_rate_cents, total_amount_cents, deposit_cents, COALESCE(special_requests, ''), created_at, confirmed_at, cancelled_at, completed_at`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func scanBooking(row interface{ Scan(...interface{}) error }, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.ConfirmationNumber, &b.VehicleID, &b.RenterID, &b.HostID, &b.StartDate, &b.EndDate, &b.Status, &b.DailyRateCents, &b.TotalAmountCents, &b.DepositCents, &b.SpecialRequests, &b.CreatedAt, &b.ConfirmedAt, &b.CancelledAt, &b.CompletedAt)
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// lockVehicle serializes all conflict-check-and-write sequences for one
// vehicle. Locking the vehicle row (rather than the booking rows) also covers
// the case where no live booking exists yet and two inserts race.
func lockVehicle(ctx context.Context, tx *sql.Tx, vehicleID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`, vehicleID).Scan(&id)
	if err == sql.ErrNoRows {
		return domain.NewNotFoundError("vehicle", vehicleID)
	}
	return err
}

func countOverlaps(ctx context.Context, tx *sql.Tx, vehicleID string, start, end time.Time, excludeBookingID string) (int, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE vehicle_id = $1 AND status = ANY($2) AND start_date <= $3 AND end_date >= $4`
	args := []interface{}{vehicleID, pq.Array(statusStrings(domain.LiveStatuses)), end, start}
	if excludeBookingID != "" {
		query += " AND id <> $5"
		args = append(args, excludeBookingID)
	}
	var count int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func insertEvent(ctx context.Context, tx *sql.Tx, event *domain.BookingEvent) error {
	query := `INSERT INTO booking_events (booking_id, from_status, to_status, actor_id, actor_role, reason, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	event.CreatedAt = time.Now().UTC()
	return tx.QueryRowContext(ctx, query, event.BookingID, event.FromStatus, event.ToStatus, event.ActorID, event.ActorRole, event.Reason, event.CreatedAt).Scan(&event.ID)
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockVehicle(ctx, tx, b.VehicleID); err != nil {
		return err
	}
	overlaps, err := countOverlaps(ctx, tx, b.VehicleID, b.StartDate, b.EndDate, "")
	if err != nil {
		return err
	}
	if overlaps > 0 {
		return domain.NewConflictError("vehicle is not available for the selected dates")
	}

	query := `INSERT INTO bookings (id, confirmation_number, vehicle_id, renter_id, host_id, start_date, end_date, status, daily_rate_cents, total_amount_cents, deposit_cents, special_requests, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	b.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, query, b.ID, b.ConfirmationNumber, b.VehicleID, b.RenterID, b.HostID, b.StartDate, b.EndDate, b.Status, b.DailyRateCents, b.TotalAmountCents, b.DepositCents, b.SpecialRequests, b.CreatedAt)
	if err != nil {
		return err
	}

	event.BookingID = b.ID
	if err := insertEvent(ctx, tx, event); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingCols + ` FROM bookings WHERE id = $1`
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), b)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("booking", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) FindConflicts(ctx context.Context, vehicleID string, start, end time.Time, statuses []domain.BookingStatus, excludeBookingID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingCols + ` FROM bookings
	          WHERE vehicle_id = $1 AND status = ANY($2) AND start_date <= $3 AND end_date >= $4`
	args := []interface{}{vehicleID, pq.Array(statusStrings(statuses)), end, start}
	if excludeBookingID != "" {
		query += " AND id <> $5"
		args = append(args, excludeBookingID)
	}
	query += " ORDER BY start_date"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) HasConflict(ctx context.Context, vehicleID string, start, end time.Time, excludeBookingID string) (bool, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE vehicle_id = $1 AND status = ANY($2) AND start_date <= $3 AND end_date >= $4`
	args := []interface{}{vehicleID, pq.Array(statusStrings(domain.LiveStatuses)), end, start}
	if excludeBookingID != "" {
		query += " AND id <> $5"
		args = append(args, excludeBookingID)
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookingRepository) Confirm(ctx context.Context, b *domain.Booking, event *domain.BookingEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockVehicle(ctx, tx, b.VehicleID); err != nil {
		return err
	}
	overlaps, err := countOverlaps(ctx, tx, b.VehicleID, b.StartDate, b.EndDate, b.ID)
	if err != nil {
		return err
	}
	if overlaps > 0 {
		return domain.NewConflictError("vehicle is no longer available for the booked dates")
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, `UPDATE bookings SET status = $1, confirmed_at = $2 WHERE id = $3 AND status = $4`,
		domain.BookingStatusConfirmed, now, b.ID, domain.BookingStatusPending)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewStateError("confirm booking", string(b.Status))
	}
	b.Status = domain.BookingStatusConfirmed
	b.ConfirmedAt = &now

	event.BookingID = b.ID
	if err := insertEvent(ctx, tx, event); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *bookingRepository) Transition(ctx context.Context, b *domain.Booking, to domain.BookingStatus, event *domain.BookingEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	query := `UPDATE bookings SET status = $1`
	args := []interface{}{to}
	argIdx := 2
	switch to {
	case domain.BookingStatusCancelled:
		query += fmt.Sprintf(", cancelled_at = $%d", argIdx)
		args = append(args, now)
		argIdx++
	case domain.BookingStatusCompleted:
		query += fmt.Sprintf(", completed_at = $%d", argIdx)
		args = append(args, now)
		argIdx++
	}
	query += fmt.Sprintf(" WHERE id = $%d AND status = $%d", argIdx, argIdx+1)
	args = append(args, b.ID, b.Status)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewStateError(fmt.Sprintf("move booking to %s", to), string(b.Status))
	}

	from := b.Status
	b.Status = to
	switch to {
	case domain.BookingStatusCancelled:
		b.CancelledAt = &now
	case domain.BookingStatusCompleted:
		b.CompletedAt = &now
	}

	event.BookingID = b.ID
	event.FromStatus = from
	event.ToStatus = to
	if err := insertEvent(ctx, tx, event); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *bookingRepository) ApproveExtension(ctx context.Context, b *domain.Booking, ext *domain.TripExtension, newTotalCents int64, event *domain.BookingEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockVehicle(ctx, tx, b.VehicleID); err != nil {
		return err
	}

	// Only the delta range can collide: the parent already owns its own days.
	deltaStart := b.EndDate.AddDate(0, 0, 1)
	overlaps, err := countOverlaps(ctx, tx, b.VehicleID, deltaStart, ext.RequestedEndDate, b.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if overlaps > 0 {
		// Auto-decline so the renter is not left holding a pending request
		// that can never succeed.
		result, derr := tx.ExecContext(ctx,
			`UPDATE trip_extensions SET status = $1, responded_by = $2, decline_reason = $3, responded_at = $4 WHERE id = $5 AND status = $6`,
			domain.ExtensionStatusDeclined, ext.RespondedBy, "requested dates are no longer available", now, ext.ID, domain.ExtensionStatusPending)
		if derr != nil {
			return derr
		}
		if affected, aerr := result.RowsAffected(); aerr != nil {
			return aerr
		} else if affected == 0 {
			return domain.NewStateError("approve extension", string(ext.Status))
		}
		if cerr := tx.Commit(); cerr != nil {
			return cerr
		}
		ext.Status = domain.ExtensionStatusDeclined
		ext.DeclineReason = "requested dates are no longer available"
		ext.RespondedAt = &now
		return domain.NewConflictError("extension dates conflict with another booking")
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE trip_extensions SET status = $1, responded_by = $2, responded_at = $3 WHERE id = $4 AND status = $5`,
		domain.ExtensionStatusApproved, ext.RespondedBy, now, ext.ID, domain.ExtensionStatusPending)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewStateError("approve extension", string(ext.Status))
	}

	// Guarded like Confirm: a cancel may have landed since the service read
	// the booking, and only the vehicle row is locked here.
	result, err = tx.ExecContext(ctx, `UPDATE bookings SET end_date = $1, total_amount_cents = $2 WHERE id = $3 AND status = ANY($4)`,
		ext.RequestedEndDate, newTotalCents, b.ID, pq.Array(statusStrings(domain.ExtendableStatuses)))
	if err != nil {
		return err
	}
	affected, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewStateError("extend booking", string(b.Status))
	}

	event.BookingID = b.ID
	if err := insertEvent(ctx, tx, event); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	b.EndDate = ext.RequestedEndDate
	b.TotalAmountCents = newTotalCents
	ext.Status = domain.ExtensionStatusApproved
	ext.RespondedAt = &now
	return nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByHost(ctx context.Context, hostID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "host_id", hostID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, column, userID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingCols + ` FROM bookings WHERE ` + column + ` = $1`

	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListEvents(ctx context.Context, bookingID string) ([]domain.BookingEvent, error) {
	query := `SELECT id, booking_id, from_status, to_status, actor_id, actor_role, COALESCE(reason, ''), created_at
	          FROM booking_events WHERE booking_id = $1 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.BookingEvent
	for rows.Next() {
		var e domain.BookingEvent
		if err := rows.Scan(&e.ID, &e.BookingID, &e.FromStatus, &e.ToStatus, &e.ActorID, &e.ActorRole, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
