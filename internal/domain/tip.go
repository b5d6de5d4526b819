package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tip validation errors
var (
	ErrTipIDEmpty      = errors.New("tip ID cannot be empty")
	ErrTipExpertEmpty  = errors.New("tip expert ID cannot be empty")
	ErrTipSpeciesEmpty = errors.New("tip species ID cannot be empty")
	ErrTipTitleEmpty   = errors.New("tip title cannot be empty")
	ErrTipContentEmpty = errors.New("tip content cannot be empty")
)

// ExpertTip is a care tip published by an expert for one species. Hidden
// tips stay in the store but are excluded from public catalog reads;
// hiding is a moderation action, not a delete.
type ExpertTip struct {
	ID        uuid.UUID `json:"id"`
	ExpertID  uuid.UUID `json:"expert_id"`
	SpeciesID uuid.UUID `json:"species_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewExpertTip creates a visible tip authored by the given expert.
func NewExpertTip(expertID, speciesID uuid.UUID, title, content string) (*ExpertTip, error) {
	tip := &ExpertTip{
		ID:        uuid.New(),
		ExpertID:  expertID,
		SpeciesID: speciesID,
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := tip.Validate(); err != nil {
		return nil, err
	}

	return tip, nil
}

// Validate checks if the ExpertTip has valid data.
func (t *ExpertTip) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTipIDEmpty
	}
	if t.ExpertID == uuid.Nil {
		return ErrTipExpertEmpty
	}
	if t.SpeciesID == uuid.Nil {
		return ErrTipSpeciesEmpty
	}
	if t.Title == "" {
		return ErrTipTitleEmpty
	}
	if t.Content == "" {
		return ErrTipContentEmpty
	}
	return nil
}
