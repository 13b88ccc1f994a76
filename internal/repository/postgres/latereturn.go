package postgres

import (
	"context"
	"database/sql"
	"time"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/repository"
)

type lateReturnRepository struct {
	db *sql.DB
}

func NewLateReturnRepository(db *sql.DB) repository.LateReturnRepository {
	return &lateReturnRepository{db: db}
}

func (r *lateReturnRepository) FindOverdueActive(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingCols + ` FROM bookings WHERE status = $1 AND end_date < $2 ORDER BY end_date`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusActive, cutoff)
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

func (r *lateReturnRepository) GetOpenByBooking(ctx context.Context, bookingID string) (*domain.LateReturn, error) {
	lr := &domain.LateReturn{}
	query := `SELECT id, booking_id, original_end_date, hours_late, hourly_fee_cents, total_late_fee_cents, capped, escalated, status, created_at, updated_at
	          FROM late_returns WHERE booking_id = $1 AND status <> $2 ORDER BY created_at DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, bookingID, domain.LateReturnResolved).Scan(&lr.ID, &lr.BookingID, &lr.OriginalEndDate, &lr.HoursLate, &lr.HourlyFeeCents, &lr.TotalLateFeeCents, &lr.Capped, &lr.Escalated, &lr.Status, &lr.CreatedAt, &lr.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("late return", bookingID)
	}
	if err != nil {
		return nil, err
	}
	return lr, nil
}

func (r *lateReturnRepository) Create(ctx context.Context, lr *domain.LateReturn) error {
	query := `INSERT INTO late_returns (id, booking_id, original_end_date, hours_late, hourly_fee_cents, total_late_fee_cents, capped, escalated, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`
	now := time.Now().UTC()
	lr.CreatedAt = now
	lr.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query, lr.ID, lr.BookingID, lr.OriginalEndDate, lr.HoursLate, lr.HourlyFeeCents, lr.TotalLateFeeCents, lr.Capped, lr.Escalated, lr.Status, now)
	return err
}

func (r *lateReturnRepository) Update(ctx context.Context, lr *domain.LateReturn) error {
	query := `UPDATE late_returns SET hours_late = $1, total_late_fee_cents = $2, capped = $3, escalated = $4, status = $5, updated_at = $6 WHERE id = $7`
	lr.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, lr.HoursLate, lr.TotalLateFeeCents, lr.Capped, lr.Escalated, lr.Status, lr.UpdatedAt, lr.ID)
	return err
}

func (r *lateReturnRepository) Resolve(ctx context.Context, bookingID string) error {
	query := `UPDATE late_returns SET status = $1, updated_at = $2 WHERE booking_id = $3 AND status <> $1`
	_, err := r.db.ExecContext(ctx, query, domain.LateReturnResolved, time.Now().UTC(), bookingID)
	return err
}
