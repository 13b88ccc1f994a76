package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"zemo-rental-backend/internal/domain"
	"zemo-rental-backend/internal/service"
)

type ReturnHandler struct {
	svc service.ReturnService
}

func NewReturnHandler(svc service.ReturnService) *ReturnHandler {
	return &ReturnHandler{svc: svc}
}

type inspectionRequest struct {
	Mileage              int32               `json:"mileage"`
	FuelLevel            float64             `json:"fuel_level"`
	Notes                string              `json:"notes"`
	OverallCondition     string              `json:"overall_condition"`
	DamageItems          []domain.DamageItem `json:"damage_items"`
	CleaningChargesCents int64               `json:"cleaning_charges_cents"`
	OtherChargesCents    int64               `json:"other_charges_cents"`
	Justification        string              `json:"justification"`
}

func (h *ReturnHandler) RecordPickup(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req inspectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	insp, err := h.svc.RecordPickupInspection(r.Context(), claims.UserID, mux.Vars(r)["id"], service.PickupInspectionInput{
		Mileage:          req.Mileage,
		FuelLevel:        req.FuelLevel,
		Notes:            req.Notes,
		OverallCondition: domain.VehicleCondition(req.OverallCondition),
		DamageItems:      req.DamageItems,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, insp)
}

type returnResponse struct {
	Inspection *domain.Inspection        `json:"inspection"`
	Adjustment *domain.DepositAdjustment `json:"deposit_adjustment,omitempty"`
	Booking    *domain.Booking           `json:"booking"`
}

func (h *ReturnHandler) ProcessReturn(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req inspectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	insp, adj, booking, err := h.svc.ProcessReturn(r.Context(), claims.UserID, mux.Vars(r)["id"], service.ReturnInput{
		Mileage:              req.Mileage,
		FuelLevel:            req.FuelLevel,
		Notes:                req.Notes,
		OverallCondition:     domain.VehicleCondition(req.OverallCondition),
		DamageItems:          req.DamageItems,
		CleaningChargesCents: req.CleaningChargesCents,
		OtherChargesCents:    req.OtherChargesCents,
		Justification:        req.Justification,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, returnResponse{Inspection: insp, Adjustment: adj, Booking: booking})
}

func (h *ReturnHandler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	adjustments, err := h.svc.ListAdjustments(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"adjustments": adjustments})
}
