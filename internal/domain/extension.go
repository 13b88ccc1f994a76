package domain

import "time"

type ExtensionStatus string

const (
	ExtensionStatusPending  ExtensionStatus = "PENDING"
	ExtensionStatusApproved ExtensionStatus = "APPROVED"
	ExtensionStatusDeclined ExtensionStatus = "DECLINED"
)

// IsResolved reports whether the extension reached a terminal status.
// Resolved extensions are immutable.
func (s ExtensionStatus) IsResolved() bool {
	return s == ExtensionStatusApproved || s == ExtensionStatusDeclined
}

// TripExtension is a renter-initiated request to push a booking's end date
// later. Many may exist historically per booking; at most one may be PENDING
// at a time. The extra days are reserved at approval, not at request.
type TripExtension struct {
	ID               string          `json:"id"`
	BookingID        string          `json:"booking_id"`
	RequestedBy      string          `json:"requested_by"`
	OriginalEndDate  time.Time       `json:"original_end_date"`
	RequestedEndDate time.Time       `json:"requested_end_date"`
	AdditionalDays   int             `json:"additional_days"`
	Status           ExtensionStatus `json:"status"`
	RespondedBy      string          `json:"responded_by,omitempty"`
	DeclineReason    string          `json:"decline_reason,omitempty"`
	RequestedAt      time.Time       `json:"requested_at"`
	RespondedAt      *time.Time      `json:"responded_at,omitempty"`
}
