package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/SonJH7/Pium/internal/api/shared"
	"github.com/SonJH7/Pium/internal/service"
)

// TipHandler handles the expert tip surface. Routes are mounted behind
// the expert role requirement.
type TipHandler struct {
	tipService service.TipService
	validator  *validator.Validate
}

// NewTipHandler creates a new TipHandler with the given dependencies.
func NewTipHandler(tipService service.TipService) *TipHandler {
	return &TipHandler{
		tipService: tipService,
		validator:  validator.New(),
	}
}

// ListMine handles GET /tips.
func (h *TipHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	tips, err := h.tipService.ListMine(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tips)
}

// Create handles POST /tips.
func (h *TipHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req TipRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.SpeciesID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "species_id is required")
		return
	}

	tip, err := h.tipService.CreateTip(r.Context(), userID, req.SpeciesID, req.Title, req.Content)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tip)
}

// Update handles PUT /tips/{tipID}.
func (h *TipHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, tipID, ok := requireUserAndPathUUID(w, r, "tipID")
	if !ok {
		return
	}

	var req TipRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tip, err := h.tipService.UpdateTip(r.Context(), userID, tipID, req.Title, req.Content)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tip)
}

// Delete handles DELETE /tips/{tipID}.
func (h *TipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, tipID, ok := requireUserAndPathUUID(w, r, "tipID")
	if !ok {
		return
	}

	if err := h.tipService.DeleteTip(r.Context(), userID, tipID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
