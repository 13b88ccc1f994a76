package domain

import "time"

type NotificationType string

const (
	NotificationBookingRequested   NotificationType = "BOOKING_REQUESTED"
	NotificationBookingConfirmed   NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingRejected    NotificationType = "BOOKING_REJECTED"
	NotificationBookingCancelled   NotificationType = "BOOKING_CANCELLED"
	NotificationBookingCompleted   NotificationType = "BOOKING_COMPLETED"
	NotificationExtensionRequested NotificationType = "EXTENSION_REQUESTED"
	NotificationExtensionApproved  NotificationType = "EXTENSION_APPROVED"
	NotificationExtensionDeclined  NotificationType = "EXTENSION_DECLINED"
	NotificationLateReturn         NotificationType = "LATE_RETURN"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"user_id"`
	BookingID string           `json:"booking_id,omitempty"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	ActionURL string           `json:"action_url,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
