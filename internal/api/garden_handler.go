package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/SonJH7/Pium/internal/api/shared"
	"github.com/SonJH7/Pium/internal/service"
	"github.com/SonJH7/Pium/internal/service/growth"
)

// GardenHandler handles the player's garden and the growing game itself:
// starting plants, submitting answers and the two recovery choices.
type GardenHandler struct {
	gardenService service.GardenService
	growthService growth.GrowthService
	validator     *validator.Validate
}

// NewGardenHandler creates a new GardenHandler with the given dependencies.
func NewGardenHandler(
	gardenService service.GardenService,
	growthService growth.GrowthService,
) *GardenHandler {
	return &GardenHandler{
		gardenService: gardenService,
		growthService: growthService,
		validator:     validator.New(),
	}
}

// ListGarden handles GET /garden.
func (h *GardenHandler) ListGarden(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	plants, err := h.gardenService.ListGarden(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, plants)
}

// StartGrowing handles POST /garden.
func (h *GardenHandler) StartGrowing(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req StartGrowingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plant, err := h.gardenService.StartGrowing(r.Context(), userID, req.SpeciesID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, plant)
}

// GetPlant handles GET /garden/{plantID}: the growing screen payload.
func (h *GardenHandler) GetPlant(w http.ResponseWriter, r *http.Request) {
	userID, plantID, ok := requireUserAndPathUUID(w, r, "plantID")
	if !ok {
		return
	}

	view, err := h.growthService.GetInstance(r.Context(), userID, plantID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SubmitAnswer handles POST /garden/{plantID}/answer.
func (h *GardenHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, plantID, ok := requireUserAndPathUUID(w, r, "plantID")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.growthService.SubmitAnswer(r.Context(), userID, plantID, *req.Answer)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// PayToPass handles POST /garden/{plantID}/pay-to-pass.
func (h *GardenHandler) PayToPass(w http.ResponseWriter, r *http.Request) {
	userID, plantID, ok := requireUserAndPathUUID(w, r, "plantID")
	if !ok {
		return
	}

	result, err := h.growthService.PayToPass(r.Context(), userID, plantID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ResetToStart handles POST /garden/{plantID}/reset.
func (h *GardenHandler) ResetToStart(w http.ResponseWriter, r *http.Request) {
	userID, plantID, ok := requireUserAndPathUUID(w, r, "plantID")
	if !ok {
		return
	}

	result, err := h.growthService.ResetToStart(r.Context(), userID, plantID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
