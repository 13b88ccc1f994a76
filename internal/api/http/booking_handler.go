package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func pageParams(r *http.Request) (int32, int32) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return int32(page), int32(pageSize)
}

type createBookingRequest struct {
	VehicleID       string `json:"vehicle_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	SpecialRequests string `json:"special_requests"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.svc.CreateBooking(r.Context(), claims.UserID, req.VehicleID, req.StartDate, req.EndDate, req.SpecialRequests)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	booking, err := h.svc.GetBooking(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type bookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int32            `json:"total"`
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	page, pageSize := pageParams(r)
	bookings, total, err := h.svc.ListMyBookings(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, Total: total})
}

func (h *BookingHandler) ListHosted(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	page, pageSize := pageParams(r)
	bookings, total, err := h.svc.ListHostBookings(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, Total: total})
}

func (h *BookingHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	events, err := h.svc.ListBookingEvents(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	booking, err := h.svc.AcceptBooking(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Decline(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req reasonRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.svc.DeclineBooking(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req reasonRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.svc.CancelBooking(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	available, err := h.svc.CheckAvailability(r.Context(), mux.Vars(r)["id"], q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

type forceTransitionRequest struct {
	To     string `json:"to"`
	Reason string `json:"reason"`
}

func (h *BookingHandler) ForceTransition(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req forceTransitionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := h.svc.ForceTransition(r.Context(), claims.UserID, mux.Vars(r)["id"], domain.BookingStatus(req.To), req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
