package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Species-specific validation errors
var (
	ErrSpeciesIDEmpty       = errors.New("species ID cannot be empty")
	ErrSpeciesNameEmpty     = errors.New("species common name cannot be empty")
	ErrInvalidCategory      = errors.New("invalid species category")
	ErrInvalidDifficulty    = errors.New("species difficulty must be between 1 and 5")
	ErrInvalidSunLevel      = errors.New("invalid sun level")
	ErrStepIDEmpty          = errors.New("quiz step ID cannot be empty")
	ErrStepSpeciesEmpty     = errors.New("quiz step species ID cannot be empty")
	ErrStepOrderInvalid     = errors.New("quiz step order must be at least 1")
	ErrStepQuestionEmpty    = errors.New("quiz step question cannot be empty")
	ErrStepStageNameEmpty   = errors.New("quiz step stage name cannot be empty")
	ErrStepExplanationEmpty = errors.New("quiz step explanation cannot be empty")
)

// Category classifies a species in the catalog.
type Category string

const (
	CategoryLeaf      Category = "leaf"
	CategoryFlower    Category = "flower"
	CategoryFruit     Category = "fruit"
	CategorySucculent Category = "succulent"
)

// Valid reports whether the category is one of the catalog categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryLeaf, CategoryFlower, CategoryFruit, CategorySucculent:
		return true
	default:
		return false
	}
}

// SunLevel describes how much light a species needs.
type SunLevel string

const (
	SunLow  SunLevel = "low"
	SunMid  SunLevel = "mid"
	SunHigh SunLevel = "high"
)

// Valid reports whether the sun level is recognized.
func (s SunLevel) Valid() bool {
	switch s {
	case SunLow, SunMid, SunHigh:
		return true
	default:
		return false
	}
}

// Species is one kind of plant in the catalog, with an ordered list of quiz
// steps users climb to grow it.
type Species struct {
	ID          uuid.UUID `json:"id"`
	CommonName  string    `json:"common_name"`
	Category    Category  `json:"category"`
	Difficulty  int       `json:"difficulty"`
	SunLevel    SunLevel  `json:"sun_level"`
	ImageURL    string    `json:"image_url,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSpecies creates a new catalog Species.
// Returns an error if validation fails.
func NewSpecies(
	commonName string,
	category Category,
	difficulty int,
	sunLevel SunLevel,
	imageURL, description string,
) (*Species, error) {
	sp := &Species{
		ID:          uuid.New(),
		CommonName:  strings.TrimSpace(commonName),
		Category:    category,
		Difficulty:  difficulty,
		SunLevel:    sunLevel,
		ImageURL:    strings.TrimSpace(imageURL),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := sp.Validate(); err != nil {
		return nil, err
	}

	return sp, nil
}

// Validate checks if the Species has valid data.
func (s *Species) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSpeciesIDEmpty
	}
	if s.CommonName == "" {
		return ErrSpeciesNameEmpty
	}
	if !s.Category.Valid() {
		return ErrInvalidCategory
	}
	if s.Difficulty < 1 || s.Difficulty > 5 {
		return ErrInvalidDifficulty
	}
	if !s.SunLevel.Valid() {
		return ErrInvalidSunLevel
	}
	return nil
}

// QuizStep is one ordered stage of growth for a species, gated by a yes/no
// quiz question. Steps are immutable as far as the growth engine is
// concerned; only content managers edit them.
type QuizStep struct {
	ID            uuid.UUID `json:"id"`
	SpeciesID     uuid.UUID `json:"species_id"`
	StepOrder     int       `json:"step_order"` // 1-based, unique within a species
	StageName     string    `json:"stage_name"`
	Question      string    `json:"question"`
	CorrectAnswer bool      `json:"-"` // Never leaked to players
	Explanation   string    `json:"explanation"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewQuizStep creates a quiz step for a species.
// Returns an error if validation fails.
func NewQuizStep(
	speciesID uuid.UUID,
	stepOrder int,
	stageName, question string,
	correctAnswer bool,
	explanation string,
) (*QuizStep, error) {
	step := &QuizStep{
		ID:            uuid.New(),
		SpeciesID:     speciesID,
		StepOrder:     stepOrder,
		StageName:     strings.TrimSpace(stageName),
		Question:      strings.TrimSpace(question),
		CorrectAnswer: correctAnswer,
		Explanation:   strings.TrimSpace(explanation),
		CreatedAt:     time.Now().UTC(),
	}

	if err := step.Validate(); err != nil {
		return nil, err
	}

	return step, nil
}

// Validate checks if the QuizStep has valid data.
func (q *QuizStep) Validate() error {
	if q.ID == uuid.Nil {
		return ErrStepIDEmpty
	}
	if q.SpeciesID == uuid.Nil {
		return ErrStepSpeciesEmpty
	}
	if q.StepOrder < 1 {
		return ErrStepOrderInvalid
	}
	if q.StageName == "" {
		return ErrStepStageNameEmpty
	}
	if q.Question == "" {
		return ErrStepQuestionEmpty
	}
	if q.Explanation == "" {
		return ErrStepExplanationEmpty
	}
	return nil
}
