package postgres

import (
	"context"
	"database/sql"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, host_id, make, model, year, plate_number, daily_rate_cents, deposit_cents, late_fee_cents_per_hr, is_active, availability, verification_status, created_at
	          FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.HostID, &v.Make, &v.Model, &v.Year, &v.PlateNumber, &v.DailyRateCents, &v.DepositCents, &v.LateFeeCentsPerHr, &v.IsActive, &v.Availability, &v.VerificationStatus, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("vehicle", id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
