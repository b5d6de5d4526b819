package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/SonJH7/Pium/internal/api/shared"
	"github.com/SonJH7/Pium/internal/service"
)

// AdminHandler handles the administrator surface: expert applications,
// the operations dashboard and the audit trail.
type AdminHandler struct {
	adminService service.AdminService
	validator    *validator.Validate
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validator:    validator.New(),
	}
}

// ListApplications handles GET /admin/applications.
func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := h.adminService.ListPendingApplications(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, applications)
}

// DecideApplication handles POST /admin/applications/{userID}/decide.
func (h *AdminHandler) DecideApplication(w http.ResponseWriter, r *http.Request) {
	adminID, userID, ok := requireUserAndPathUUID(w, r, "userID")
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

	if err := h.adminService.DecideApplication(r.Context(), adminID, userID, *req.Approve); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Dashboard(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// ListAudit handles GET /admin/audit with an optional limit parameter.
func (h *AdminHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	entries, err := h.adminService.ListAudit(r.Context(), limit)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}
