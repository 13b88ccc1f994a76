package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/repository"
)

type inspectionRepository struct {
	db *sql.DB
}

func NewInspectionRepository(db *sql.DB) repository.InspectionRepository {
	return &inspectionRepository{db: db}
}

func (r *inspectionRepository) Create(ctx context.Context, insp *domain.Inspection) error {
	items, err := json.Marshal(insp.DamageItems)
	if err != nil {
		return err
	}
	query := `INSERT INTO inspections (id, booking_id, vehicle_id, inspector_id, type, mileage, fuel_level, notes, overall_condition, damage_items, damage_score, adjusted_score, risk_level, repair_cost_cents, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	insp.CreatedAt = time.Now().UTC()
	_, err = r.db.ExecContext(ctx, query, insp.ID, insp.BookingID, insp.VehicleID, insp.InspectorID, insp.Type, insp.Mileage, insp.FuelLevel, insp.Notes, insp.OverallCondition, items, insp.DamageScore, insp.AdjustedScore, insp.RiskLevel, insp.RepairCostCents, insp.CreatedAt)
	return err
}

func (r *inspectionRepository) GetByBookingAndType(ctx context.Context, bookingID string, t domain.InspectionType) (*domain.Inspection, error) {
	insp := &domain.Inspection{}
	var items []byte
	query := `SELECT id, booking_id, vehicle_id, inspector_id, type, mileage, fuel_level, COALESCE(notes, ''), overall_condition, damage_items, damage_score, adjusted_score, risk_level, repair_cost_cents, created_at
	          FROM inspections WHERE booking_id = $1 AND type = $2 ORDER BY created_at DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, bookingID, t).Scan(&insp.ID, &insp.BookingID, &insp.VehicleID, &insp.InspectorID, &insp.Type, &insp.Mileage, &insp.FuelLevel, &insp.Notes, &insp.OverallCondition, &items, &insp.DamageScore, &insp.AdjustedScore, &insp.RiskLevel, &insp.RepairCostCents, &insp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("inspection", bookingID)
	}
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &insp.DamageItems); err != nil {
			return nil, err
		}
	}
	return insp, nil
}

func (r *inspectionRepository) CreateAdjustment(ctx context.Context, adj *domain.DepositAdjustment) error {
	query := `INSERT INTO deposit_adjustments (id, booking_id, inspection_id, original_deposit_cents, damage_charges_cents, cleaning_charges_cents, fuel_charges_cents, other_charges_cents, adjustment_cents, final_return_cents, justification, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	adj.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, adj.ID, adj.BookingID, adj.InspectionID, adj.OriginalDepositCents, adj.DamageChargesCents, adj.CleaningChargesCents, adj.FuelChargesCents, adj.OtherChargesCents, adj.AdjustmentCents, adj.FinalReturnCents, adj.Justification, adj.CreatedAt)
	return err
}

func (r *inspectionRepository) ListAdjustments(ctx context.Context, bookingID string) ([]domain.DepositAdjustment, error) {
	query := `SELECT id, booking_id, inspection_id, original_deposit_cents, damage_charges_cents, cleaning_charges_cents, fuel_charges_cents, other_charges_cents, adjustment_cents, final_return_cents, COALESCE(justification, ''), created_at
	          FROM deposit_adjustments WHERE booking_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []domain.DepositAdjustment
	for rows.Next() {
		var adj domain.DepositAdjustment
		if err := rows.Scan(&adj.ID, &adj.BookingID, &adj.InspectionID, &adj.OriginalDepositCents, &adj.DamageChargesCents, &adj.CleaningChargesCents, &adj.FuelChargesCents, &adj.OtherChargesCents, &adj.AdjustmentCents, &adj.FinalReturnCents, &adj.Justification, &adj.CreatedAt); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, rows.Err()
}
