package postgres

import (
	"context"
	"database/sql"
	"time"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/repository"
)

const extensionCols = `id, booking_id, requested_by, original_end_date, requested_end_date, additional_days, status, COALESCE(responded_by, ''), COALESCE(decline_reason, ''), requested_at, responded_at`

type extensionRepository struct {
	db *sql.DB
}

func NewExtensionRepository(db *sql.DB) repository.ExtensionRepository {
	return &extensionRepository{db: db}
}

func scanExtension(row interface{ Scan(...interface{}) error }, ext *domain.TripExtension) error {
	return row.Scan(&ext.ID, &ext.BookingID, &ext.RequestedBy, &ext.OriginalEndDate, &ext.RequestedEndDate, &ext.AdditionalDays, &ext.Status, &ext.RespondedBy, &ext.DeclineReason, &ext.RequestedAt, &ext.RespondedAt)
}

func (r *extensionRepository) Create(ctx context.Context, ext *domain.TripExtension) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock the parent booking so two simultaneous requests cannot both pass
	// the one-pending check, and re-validate its status under the lock: a
	// cancel can land between the service's read and this transaction.
	var status domain.BookingStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, ext.BookingID).Scan(&status)
	if err == sql.ErrNoRows {
		return domain.NewNotFoundError("booking", ext.BookingID)
	}
	if err != nil {
		return err
	}
	if status != domain.BookingStatusConfirmed && status != domain.BookingStatusActive {
		return domain.NewStateError("request extension", string(status))
	}

	var pending int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM trip_extensions WHERE booking_id = $1 AND status = $2`,
		ext.BookingID, domain.ExtensionStatusPending).Scan(&pending)
	if err != nil {
		return err
	}
	if pending > 0 {
		return domain.NewConflictError("an extension request is already pending for this booking")
	}

	query := `INSERT INTO trip_extensions (id, booking_id, requested_by, original_end_date, requested_end_date, additional_days, status, requested_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	ext.RequestedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, query, ext.ID, ext.BookingID, ext.RequestedBy, ext.OriginalEndDate, ext.RequestedEndDate, ext.AdditionalDays, ext.Status, ext.RequestedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *extensionRepository) GetByID(ctx context.Context, id string) (*domain.TripExtension, error) {
	ext := &domain.TripExtension{}
	query := `SELECT ` + extensionCols + ` FROM trip_extensions WHERE id = $1`
	err := scanExtension(r.db.QueryRowContext(ctx, query, id), ext)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("extension", id)
	}
	if err != nil {
		return nil, err
	}
	return ext, nil
}

func (r *extensionRepository) Decline(ctx context.Context, ext *domain.TripExtension) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE trip_extensions SET status = $1, responded_by = $2, decline_reason = $3, responded_at = $4 WHERE id = $5 AND status = $6`,
		domain.ExtensionStatusDeclined, ext.RespondedBy, ext.DeclineReason, now, ext.ID, domain.ExtensionStatusPending)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewStateError("decline extension", string(ext.Status))
	}
	ext.Status = domain.ExtensionStatusDeclined
	ext.RespondedAt = &now
	return nil
}

func (r *extensionRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.TripExtension, error) {
	query := `SELECT ` + extensionCols + ` FROM trip_extensions WHERE booking_id = $1 ORDER BY requested_at DESC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extensions []domain.TripExtension
	for rows.Next() {
		var ext domain.TripExtension
		if err := scanExtension(rows, &ext); err != nil {
			return nil, err
		}
		extensions = append(extensions, ext)
	}
	return extensions, rows.Err()
}
