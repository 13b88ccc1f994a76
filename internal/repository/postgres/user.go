package postgres

import (
	"context"
	"database/sql"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, name, COALESCE(phone, ''), is_admin, verified, created_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.IsAdmin, &u.Verified, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("user", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
