package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/SonJH7/Pium/internal/api/shared"
	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/service"
)

// ContentHandler handles the content-manager surface: catalog curation,
// quiz steps, economy settings, tip moderation and plant requests. Routes
// are mounted behind the content role requirement.
type ContentHandler struct {
	contentService service.ContentService
	validator      *validator.Validate
}

// NewContentHandler creates a new ContentHandler with the given dependencies.
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		validator:      validator.New(),
	}
}

func (h *ContentHandler) decodeSpecies(w http.ResponseWriter, r *http.Request) (service.SpeciesInput, bool) {
	var req SpeciesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return service.SpeciesInput{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return service.SpeciesInput{}, false
	}
	return service.SpeciesInput{
		CommonName:  req.CommonName,
		Category:    domain.Category(req.Category),
		Difficulty:  req.Difficulty,
		SunLevel:    domain.SunLevel(req.SunLevel),
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}, true
}

func (h *ContentHandler) decodeStep(w http.ResponseWriter, r *http.Request) (service.StepInput, bool) {
	var req StepRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return service.StepInput{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return service.StepInput{}, false
	}
	return service.StepInput{
		StepOrder:     req.StepOrder,
		StageName:     req.StageName,
		Question:      req.Question,
		CorrectAnswer: *req.CorrectAnswer,
		Explanation:   req.Explanation,
	}, true
}

// AddSpecies handles POST /content/species.
func (h *ContentHandler) AddSpecies(w http.ResponseWriter, r *http.Request) {
	actorID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	input, ok := h.decodeSpecies(w, r)
	if !ok {
		return
	}

	species, err := h.contentService.AddSpecies(r.Context(), actorID, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, species)
}

// UpdateSpecies handles PUT /content/species/{speciesID}.
func (h *ContentHandler) UpdateSpecies(w http.ResponseWriter, r *http.Request) {
	actorID, speciesID, ok := requireUserAndPathUUID(w, r, "speciesID")
	if !ok {
		return
	}

	input, ok := h.decodeSpecies(w, r)
	if !ok {
		return
	}

	species, err := h.contentService.UpdateSpecies(r.Context(), actorID, speciesID, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, species)
}

// DeleteSpecies handles DELETE /content/species/{speciesID}.
func (h *ContentHandler) DeleteSpecies(w http.ResponseWriter, r *http.Request) {
	actorID, speciesID, ok := requireUserAndPathUUID(w, r, "speciesID")
	if !ok {
		return
	}

	growers, err := h.contentService.DeleteSpecies(r.Context(), actorID, speciesID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]int{"growers_removed": growers})
}

// AddStep handles POST /content/species/{speciesID}/steps.
func (h *ContentHandler) AddStep(w http.ResponseWriter, r *http.Request) {
	actorID, speciesID, ok := requireUserAndPathUUID(w, r, "speciesID")
	if !ok {
		return
	}

	input, ok := h.decodeStep(w, r)
	if !ok {
		return
	}

	step, err := h.contentService.AddStep(r.Context(), actorID, speciesID, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, step)
}

// UpdateStep handles PUT /content/steps/{stepID}.
func (h *ContentHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	actorID, stepID, ok := requireUserAndPathUUID(w, r, "stepID")
	if !ok {
		return
	}

	input, ok := h.decodeStep(w, r)
	if !ok {
		return
	}

	step, err := h.contentService.UpdateStep(r.Context(), actorID, stepID, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, step)
}

// ListSteps handles GET /content/species/{speciesID}/steps. Unlike the
// public catalog detail, this includes correct answers.
func (h *ContentHandler) ListSteps(w http.ResponseWriter, r *http.Request) {
	_, speciesID, ok := requireUserAndPathUUID(w, r, "speciesID")
	if !ok {
		return
	}

	steps, err := h.contentService.ListSteps(r.Context(), speciesID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	// The content surface needs the answers; re-shape rather than rely on
	// the domain type's JSON tags, which hide them.
	type stepWithAnswer struct {
		ID            string `json:"id"`
		SpeciesID     string `json:"species_id"`
		StepOrder     int    `json:"step_order"`
		StageName     string `json:"stage_name"`
		Question      string `json:"question"`
		CorrectAnswer bool   `json:"correct_answer"`
		Explanation   string `json:"explanation"`
	}
	out := make([]stepWithAnswer, 0, len(steps))
	for _, s := range steps {
		out = append(out, stepWithAnswer{
			ID:            s.ID.String(),
			SpeciesID:     s.SpeciesID.String(),
			StepOrder:     s.StepOrder,
			StageName:     s.StageName,
			Question:      s.Question,
			CorrectAnswer: s.CorrectAnswer,
			Explanation:   s.Explanation,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetConfig handles GET /content/config.
func (h *ContentHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	values, err := h.contentService.EconomyConfig(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, values)
}

// UpdateConfig handles PUT /content/config.
func (h *ContentHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	actorID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ConfigUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.contentService.UpdateEconomyConfig(r.Context(), actorID, req.Key, req.Value); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]int64{req.Key: req.Value})
}

// ListTips handles GET /content/tips: every tip, hidden included.
func (h *ContentHandler) ListTips(w http.ResponseWriter, r *http.Request) {
	tips, err := h.contentService.ListAllTips(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tips)
}

// SetTipVisibility handles PUT /content/tips/{tipID}/visibility.
func (h *ContentHandler) SetTipVisibility(w http.ResponseWriter, r *http.Request) {
	actorID, tipID, ok := requireUserAndPathUUID(w, r, "tipID")
	if !ok {
		return
	}

	var req TipVisibilityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.contentService.SetTipHidden(r.Context(), actorID, tipID, *req.Hidden); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRequests handles GET /content/requests.
func (h *ContentHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.contentService.ListPendingRequests(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, requests)
}

// ProcessRequest handles POST /content/requests/{requestID}/process.
func (h *ContentHandler) ProcessRequest(w http.ResponseWriter, r *http.Request) {
	actorID, requestID, ok := requireUserAndPathUUID(w, r, "requestID")
	if !ok {
		return
	}

	var req DecisionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.contentService.ProcessRequest(r.Context(), actorID, requestID, *req.Approve); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
