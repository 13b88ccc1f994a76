package domain

import "time"

type DamageSeverity string

const (
	DamageSeverityMinor    DamageSeverity = "MINOR"
	DamageSeverityModerate DamageSeverity = "MODERATE"
	DamageSeverityMajor    DamageSeverity = "MAJOR"
	DamageSeveritySevere   DamageSeverity = "SEVERE"
)

type VehicleCondition string

const (
	ConditionExcellent VehicleCondition = "EXCELLENT"
	ConditionGood      VehicleCondition = "GOOD"
	ConditionFair      VehicleCondition = "FAIR"
	ConditionPoor      VehicleCondition = "POOR"
	ConditionDamaged   VehicleCondition = "DAMAGED"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// DamageItem is one defect reported at return inspection. It is input to the
// damage calculator, not an aggregate of its own.
type DamageItem struct {
	DamageType         string         `json:"damage_type"`
	Severity           DamageSeverity `json:"severity"`
	Location           string         `json:"location"`
	Description        string         `json:"description"`
	EstimatedCostCents int64          `json:"estimated_cost_cents"`
}

// DamageAssessment is the derived scoring of a set of damage items. It is
// recomputed whenever the items change before settlement is finalized, never
// mutated directly.
type DamageAssessment struct {
	TotalScore           int       `json:"total_score"`
	TotalRepairCostCents int64     `json:"total_repair_cost_cents"`
	AdjustedScore        float64   `json:"adjusted_score"`
	RiskLevel            RiskLevel `json:"risk_level"`
}

type InspectionType string

const (
	InspectionTypePickup InspectionType = "PICKUP"
	InspectionTypeReturn InspectionType = "RETURN"
)

// Inspection records the vehicle state at pickup or return.
type Inspection struct {
	ID                 string           `json:"id"`
	BookingID          string           `json:"booking_id"`
	VehicleID          string           `json:"vehicle_id"`
	InspectorID        string           `json:"inspector_id"`
	Type               InspectionType   `json:"type"`
	Mileage            int32            `json:"mileage"`
	FuelLevel          float64          `json:"fuel_level"` // 0.0 .. 1.0
	Notes              string           `json:"notes,omitempty"`
	OverallCondition   VehicleCondition `json:"overall_condition"`
	DamageItems        []DamageItem     `json:"damage_items,omitempty"`
	DamageScore        int              `json:"damage_score"`
	AdjustedScore      float64          `json:"adjusted_score"`
	RiskLevel          RiskLevel        `json:"risk_level"`
	RepairCostCents    int64            `json:"repair_cost_cents"`
	CreatedAt          time.Time        `json:"created_at"`
}

// DepositAdjustment is the settlement of a renter's deposit at trip close.
// AdjustmentCents never exceeds the held deposit and FinalReturnCents never
// goes negative; both clamps are enforced by the settlement calculator.
type DepositAdjustment struct {
	ID                   string    `json:"id"`
	BookingID            string    `json:"booking_id"`
	InspectionID         string    `json:"inspection_id"`
	OriginalDepositCents int64     `json:"original_deposit_cents"`
	DamageChargesCents   int64     `json:"damage_charges_cents"`
	CleaningChargesCents int64     `json:"cleaning_charges_cents"`
	FuelChargesCents     int64     `json:"fuel_charges_cents"`
	OtherChargesCents    int64     `json:"other_charges_cents"`
	AdjustmentCents      int64     `json:"adjustment_cents"`
	FinalReturnCents     int64     `json:"final_return_cents"`
	Justification        string    `json:"justification,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

type LateReturnStatus string

const (
	LateReturnDetected  LateReturnStatus = "DETECTED"
	LateReturnNotified  LateReturnStatus = "NOTIFIED"
	LateReturnEscalated LateReturnStatus = "ESCALATED"
	LateReturnResolved  LateReturnStatus = "RESOLVED"
)

// LateReturn tracks an ACTIVE booking past its end date.
type LateReturn struct {
	ID                string           `json:"id"`
	BookingID         string           `json:"booking_id"`
	OriginalEndDate   time.Time        `json:"original_end_date"`
	HoursLate         int              `json:"hours_late"`
	HourlyFeeCents    int64            `json:"hourly_fee_cents"`
	TotalLateFeeCents int64            `json:"total_late_fee_cents"`
	Capped            bool             `json:"capped"`
	Escalated         bool             `json:"escalated"`
	Status            LateReturnStatus `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
