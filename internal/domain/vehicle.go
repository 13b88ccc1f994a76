package domain

import "time"

type VehicleAvailability string

const (
	VehicleAvailable   VehicleAvailability = "AVAILABLE"
	VehicleUnavailable VehicleAvailability = "UNAVAILABLE"
	VehicleSuspended   VehicleAvailability = "SUSPENDED"
)

type VehicleVerification string

const (
	VehicleVerificationPending  VehicleVerification = "PENDING"
	VehicleVerificationVerified VehicleVerification = "VERIFIED"
	VehicleVerificationRejected VehicleVerification = "REJECTED"
)

type Vehicle struct {
	ID                 string              `json:"id"`
	HostID             string              `json:"host_id"`
	Make               string              `json:"make"`
	Model              string              `json:"model"`
	Year               int                 `json:"year"`
	PlateNumber        string              `json:"plate_number"`
	DailyRateCents     int64               `json:"daily_rate_cents"`
	DepositCents       int64               `json:"deposit_cents"`
	LateFeeCentsPerHr  int64               `json:"late_fee_cents_per_hr"`
	IsActive           bool                `json:"is_active"`
	Availability       VehicleAvailability `json:"availability"`
	VerificationStatus VehicleVerification `json:"verification_status"`
	CreatedAt          time.Time           `json:"created_at"`
}

// Bookable reports whether the vehicle may accept new reservations:
// active, verified, and not suspended or otherwise withdrawn.
func (v *Vehicle) Bookable() bool {
	return v.IsActive &&
		v.Availability == VehicleAvailable &&
		v.VerificationStatus == VehicleVerificationVerified
}
