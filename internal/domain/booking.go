package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusRejected  BookingStatus = "REJECTED"
)

// LiveStatuses are the statuses that still reserve vehicle-days. PENDING is
// included on purpose: two renters must not simultaneously hold overlapping
// uncommitted requests (first-come reservation semantics). Do not "optimize"
// this down to CONFIRMED/ACTIVE.
var LiveStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusActive,
}

// ExtendableStatuses are the only parent statuses an extension may push the
// end date of. Guarded writes re-check this inside the transaction; the
// service-layer read is stale by the time the write lands.
var ExtendableStatuses = []BookingStatus{
	BookingStatusConfirmed,
	BookingStatusActive,
}

// IsLive reports whether the status counts toward date conflicts.
func (s BookingStatus) IsLive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusActive
}

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusRejected
}

// bookingTransitions is the canonical transition table. Anything not listed
// here is illegal regardless of who the actor is.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransitionTo reports whether the status machine allows moving from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ActorRole string

const (
	ActorRoleRenter ActorRole = "RENTER"
	ActorRoleHost   ActorRole = "HOST"
	ActorRoleAdmin  ActorRole = "ADMIN"
	ActorRoleSystem ActorRole = "SYSTEM"
)

// Booking reserves one vehicle for one renter over an inclusive date range.
// StartDate and EndDate are calendar dates at UTC midnight; the booking holds
// every day from StartDate through EndDate, both included. All overlap math
// depends on that inclusiveness.
type Booking struct {
	ID                 string        `json:"id"`
	ConfirmationNumber string        `json:"confirmation_number"`
	VehicleID          string        `json:"vehicle_id"`
	RenterID           string        `json:"renter_id"`
	HostID             string        `json:"host_id"`
	StartDate          time.Time     `json:"start_date"`
	EndDate            time.Time     `json:"end_date"`
	Status             BookingStatus `json:"status"`
	// Price snapshot fields — captured from the vehicle at booking creation.
	// Settlement and extension math use these, not live vehicle prices.
	DailyRateCents   int64      `json:"daily_rate_cents"`
	TotalAmountCents int64      `json:"total_amount_cents"`
	DepositCents     int64      `json:"deposit_cents"`
	SpecialRequests  string     `json:"special_requests"`
	CreatedAt        time.Time  `json:"created_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// IsRenter reports whether userID holds the renter reference on the booking.
func (b *Booking) IsRenter(userID string) bool {
	return b.RenterID == userID
}

// IsHost reports whether userID holds the host reference on the booking.
func (b *Booking) IsHost(userID string) bool {
	return b.HostID == userID
}

// IsParty reports whether userID is either side of the booking.
func (b *Booking) IsParty(userID string) bool {
	return b.IsRenter(userID) || b.IsHost(userID)
}

// Overlaps reports whether the booking's inclusive range shares at least one
// calendar day with [start, end].
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !start.After(b.EndDate)
}

// BookingEvent is the audit trail entry written on every status transition.
// Actor attribution is mandatory: admin overrides are indistinguishable from
// regular transitions except through these rows.
type BookingEvent struct {
	ID         int64         `json:"id"`
	BookingID  string        `json:"booking_id"`
	FromStatus BookingStatus `json:"from_status"`
	ToStatus   BookingStatus `json:"to_status"`
	ActorID    string        `json:"actor_id"`
	ActorRole  ActorRole     `json:"actor_role"`
	Reason     string        `json:"reason,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
