package postgres

import (
	"context"
	"database/sql"
	"time"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	query := `INSERT INTO notifications (user_id, booking_id, type, title, message, action_url, read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, false, $7) RETURNING id`
	note.CreatedAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query, note.UserID, note.BookingID, note.Type, note.Title, note.Message, note.ActionURL, note.CreatedAt).Scan(&note.ID)
}

func (r *notificationRepository) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, COALESCE(booking_id, ''), type, title, message, COALESCE(action_url, ''), read, created_at
	          FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.BookingID, &n.Type, &n.Title, &n.Message, &n.ActionURL, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id int64, userID string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("notification", "")
	}
	return nil
}
