package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/SonJH7/Pium/internal/api/shared"
	"github.com/SonJH7/Pium/internal/service"
)

// CatalogHandler handles the public catalog surface: search, detail pages
// and plant requests.
type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler with the given dependencies.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// Search handles GET /catalog?q=&limit=.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	species, err := h.catalogService.Search(r.Context(), term, limit)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, species)
}

// Detail handles GET /catalog/{speciesID}.
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	speciesID, err := getPathUUID(r, "speciesID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid speciesID")
		return
	}

	detail, err := h.catalogService.Detail(r.Context(), speciesID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, detail)
}

// RequestPlant handles POST /catalog/requests.
func (h *CatalogHandler) RequestPlant(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PlantRequestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	request, err := h.catalogService.RequestPlant(r.Context(), userID, req.PlantName)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, request)
}
