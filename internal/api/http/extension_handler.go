package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/service"
)

type ExtensionHandler struct {
	svc service.ExtensionService
}

func NewExtensionHandler(svc service.ExtensionService) *ExtensionHandler {
	return &ExtensionHandler{svc: svc}
}

type requestExtensionRequest struct {
	NewEndDate string `json:"new_end_date"`
}

func (h *ExtensionHandler) Request(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req requestExtensionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ext, err := h.svc.RequestExtension(r.Context(), claims.UserID, mux.Vars(r)["id"], req.NewEndDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ext)
}

func (h *ExtensionHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	extensions, err := h.svc.ListExtensions(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.TripExtension{"extensions": extensions})
}

type approveExtensionResponse struct {
	Extension *domain.TripExtension `json:"extension"`
	Booking   *domain.Booking       `json:"booking"`
}

func (h *ExtensionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	ext, booking, err := h.svc.ApproveExtension(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, approveExtensionResponse{Extension: ext, Booking: booking})
}

func (h *ExtensionHandler) Decline(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req reasonRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ext, err := h.svc.DeclineExtension(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ext)
}
