package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"zemo-rental-backend/internal/security"
	"zemo-rental-backend/internal/service"
)

// NewRouter wires every handler under /api/v1. All routes require a bearer
// token; rate limiting keys off the authenticated user.
func NewRouter(
	bookingSvc service.BookingService,
	extensionSvc service.ExtensionService,
	returnSvc service.ReturnService,
	notificationSvc service.NotificationService,
	tokens security.TokenManager,
	limiter *RateLimiter,
) *mux.Router {
	bookings := NewBookingHandler(bookingSvc)
	extensions := NewExtensionHandler(extensionSvc)
	returns := NewReturnHandler(returnSvc)
	notifications := NewNotificationHandler(notificationSvc)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))
	api.Use(RateLimitMiddleware(limiter))

	api.HandleFunc("/vehicles/{id}/availability", bookings.CheckAvailability).Methods(http.MethodGet)

	api.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings", bookings.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", bookings.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/events", bookings.ListEvents).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel", bookings.Cancel).Methods(http.MethodPost)

	api.HandleFunc("/host/bookings", bookings.ListHosted).Methods(http.MethodGet)
	api.HandleFunc("/host/bookings/{id}/accept", bookings.Accept).Methods(http.MethodPost)
	api.HandleFunc("/host/bookings/{id}/decline", bookings.Decline).Methods(http.MethodPost)

	api.HandleFunc("/bookings/{id}/extensions", extensions.Request).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/extensions", extensions.List).Methods(http.MethodGet)
	api.HandleFunc("/extensions/{id}/approve", extensions.Approve).Methods(http.MethodPost)
	api.HandleFunc("/extensions/{id}/decline", extensions.Decline).Methods(http.MethodPost)

	api.HandleFunc("/bookings/{id}/pickup-inspection", returns.RecordPickup).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/return", returns.ProcessReturn).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/adjustments", returns.ListAdjustments).Methods(http.MethodGet)

	api.HandleFunc("/admin/bookings/{id}/transition", bookings.ForceTransition).Methods(http.MethodPost)

	api.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", notifications.MarkAsRead).Methods(http.MethodPost)

	return r
}
