package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewSpecies(t *testing.T) {
	species, err := NewSpecies("Monstera", CategoryLeaf, 2, SunMid, "", "Split-leaf favourite")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if species.CommonName != "Monstera" {
		t.Errorf("Expected common name Monstera, got %s", species.CommonName)
	}

	if _, err := NewSpecies("", CategoryLeaf, 2, SunMid, "", ""); err != ErrSpeciesNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrSpeciesNameEmpty, err)
	}
	if _, err := NewSpecies("Monstera", Category("tree"), 2, SunMid, "", ""); err != ErrInvalidCategory {
		t.Errorf("Expected error %v, got %v", ErrInvalidCategory, err)
	}
	if _, err := NewSpecies("Monstera", CategoryLeaf, 0, SunMid, "", ""); err != ErrInvalidDifficulty {
		t.Errorf("Expected error %v, got %v", ErrInvalidDifficulty, err)
	}
	if _, err := NewSpecies("Monstera", CategoryLeaf, 6, SunMid, "", ""); err != ErrInvalidDifficulty {
		t.Errorf("Expected error %v, got %v", ErrInvalidDifficulty, err)
	}
	if _, err := NewSpecies("Monstera", CategoryLeaf, 2, SunLevel("dark"), "", ""); err != ErrInvalidSunLevel {
		t.Errorf("Expected error %v, got %v", ErrInvalidSunLevel, err)
	}
}

func TestNewQuizStep(t *testing.T) {
	speciesID := uuid.New()

	step, err := NewQuizStep(speciesID, 1, "Germination", "Should seeds stay moist?", true, "Moisture triggers sprouting.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if step.StepOrder != 1 {
		t.Errorf("Expected step order 1, got %d", step.StepOrder)
	}
	if !step.CorrectAnswer {
		t.Error("Expected correct answer true")
	}

	if _, err := NewQuizStep(uuid.Nil, 1, "Germination", "Q?", true, "Because."); err != ErrStepSpeciesEmpty {
		t.Errorf("Expected error %v, got %v", ErrStepSpeciesEmpty, err)
	}
	if _, err := NewQuizStep(speciesID, 0, "Germination", "Q?", true, "Because."); err != ErrStepOrderInvalid {
		t.Errorf("Expected error %v, got %v", ErrStepOrderInvalid, err)
	}
	if _, err := NewQuizStep(speciesID, 1, "", "Q?", true, "Because."); err != ErrStepStageNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrStepStageNameEmpty, err)
	}
	if _, err := NewQuizStep(speciesID, 1, "Germination", "", true, "Because."); err != ErrStepQuestionEmpty {
		t.Errorf("Expected error %v, got %v", ErrStepQuestionEmpty, err)
	}
	if _, err := NewQuizStep(speciesID, 1, "Germination", "Q?", true, ""); err != ErrStepExplanationEmpty {
		t.Errorf("Expected error %v, got %v", ErrStepExplanationEmpty, err)
	}
}
