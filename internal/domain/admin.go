package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Moderation and audit validation errors
var (
	ErrApplicationUserEmpty     = errors.New("expert application user ID cannot be empty")
	ErrApplicationTextEmpty     = errors.New("expert application request text cannot be empty")
	ErrInvalidApplicationStatus = errors.New("invalid expert application status")
	ErrPlantRequestIDEmpty      = errors.New("plant request ID cannot be empty")
	ErrPlantRequestUserEmpty    = errors.New("plant request requester ID cannot be empty")
	ErrPlantRequestNameEmpty    = errors.New("plant request name cannot be empty")
	ErrInvalidRequestStatus     = errors.New("invalid plant request status")
	ErrAuditIDEmpty             = errors.New("audit log entry ID cannot be empty")
	ErrAuditActorEmpty          = errors.New("audit log entry actor ID cannot be empty")
	ErrAuditActionEmpty         = errors.New("audit log entry action cannot be empty")
)

// ApplicationStatus tracks an expert application through review.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether the status is recognized.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	default:
		return false
	}
}

// ExpertApplication is a user's request for the expert role. At most one
// application exists per user; re-applying after a rejection resets it to
// pending.
type ExpertApplication struct {
	UserID      uuid.UUID         `json:"user_id"`
	RequestText string            `json:"request_text"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	DecidedAt   *time.Time        `json:"decided_at,omitempty"`
}

// NewExpertApplication creates a pending application for the user.
func NewExpertApplication(userID uuid.UUID, requestText string) (*ExpertApplication, error) {
	app := &ExpertApplication{
		UserID:      userID,
		RequestText: strings.TrimSpace(requestText),
		Status:      ApplicationPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := app.Validate(); err != nil {
		return nil, err
	}

	return app, nil
}

// Validate checks if the ExpertApplication has valid data.
func (a *ExpertApplication) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrApplicationUserEmpty
	}
	if a.RequestText == "" {
		return ErrApplicationTextEmpty
	}
	if !a.Status.Valid() {
		return ErrInvalidApplicationStatus
	}
	return nil
}

// RequestStatus tracks a plant request through processing.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestDone     RequestStatus = "done"
	RequestRejected RequestStatus = "rejected"
)

// Valid reports whether the status is recognized.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestDone, RequestRejected:
		return true
	default:
		return false
	}
}

// PlantRequest is a user's ask for a species missing from the catalog.
// Content managers process requests into done/rejected.
type PlantRequest struct {
	ID          uuid.UUID     `json:"id"`
	RequesterID uuid.UUID     `json:"requester_id"`
	PlantName   string        `json:"plant_name"`
	Status      RequestStatus `json:"status"`
	ProcessedBy *uuid.UUID    `json:"processed_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewPlantRequest creates a pending plant request.
func NewPlantRequest(requesterID uuid.UUID, plantName string) (*PlantRequest, error) {
	req := &PlantRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		PlantName:   strings.TrimSpace(plantName),
		Status:      RequestPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks if the PlantRequest has valid data.
func (r *PlantRequest) Validate() error {
	if r.ID == uuid.Nil {
		return ErrPlantRequestIDEmpty
	}
	if r.RequesterID == uuid.Nil {
		return ErrPlantRequestUserEmpty
	}
	if r.PlantName == "" {
		return ErrPlantRequestNameEmpty
	}
	if !r.Status.Valid() {
		return ErrInvalidRequestStatus
	}
	return nil
}

// AuditAction identifies a recorded admin/content action.
type AuditAction string

const (
	AuditAddSpecies    AuditAction = "ADD_SPECIES"
	AuditEditSpecies   AuditAction = "EDIT_SPECIES"
	AuditDeleteSpecies AuditAction = "DELETE_SPECIES"
	AuditAddStep       AuditAction = "ADD_STEP"
	AuditEditStep      AuditAction = "EDIT_STEP"
	AuditUpdateConfig  AuditAction = "UPDATE_CONFIG"
	AuditHideTip       AuditAction = "HIDE_TIP"
	AuditUnhideTip     AuditAction = "UNHIDE_TIP"
	AuditRequestDone   AuditAction = "REQUEST_DONE"
	AuditRequestReject AuditAction = "REQUEST_REJECT"
	AuditApproveExpert AuditAction = "APPROVE_EXPERT"
	AuditRejectExpert  AuditAction = "REJECT_EXPERT"
)

// AuditLogEntry is the append-only record of one privileged action. The
// target is optional: config updates, for example, have no single target
// row.
type AuditLogEntry struct {
	ID        uuid.UUID   `json:"id"`
	ActorID   uuid.UUID   `json:"actor_id"`
	Action    AuditAction `json:"action"`
	TargetID  *uuid.UUID  `json:"target_id,omitempty"`
	Details   string      `json:"details,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewAuditLogEntry creates an audit entry for a privileged action.
// target may be uuid.Nil when the action has no single target row.
func NewAuditLogEntry(actorID uuid.UUID, action AuditAction, target uuid.UUID, details string) (*AuditLogEntry, error) {
	e := &AuditLogEntry{
		ID:        uuid.New(),
		ActorID:   actorID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	if target != uuid.Nil {
		e.TargetID = &target
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks if the AuditLogEntry has valid data.
func (e *AuditLogEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrAuditIDEmpty
	}
	if e.ActorID == uuid.Nil {
		return ErrAuditActorEmpty
	}
	if e.Action == "" {
		return ErrAuditActionEmpty
	}
	return nil
}
