package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("jihoon@example.com", "password123", "Jihoon", "2021123456", "Horticulture")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Email != "jihoon@example.com" {
		t.Errorf("Expected email jihoon@example.com, got %s", user.Email)
	}
	if user.Role != RoleUser {
		t.Errorf("Expected default role %s, got %s", RoleUser, user.Role)
	}
	if user.Points != StartingPoints {
		t.Errorf("Expected starting balance %d, got %d", StartingPoints, user.Points)
	}
	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Invalid email
	if _, err := NewUser("", "password123", "Jihoon", "", ""); err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}
	if _, err := NewUser("not-an-email", "password123", "Jihoon", "", ""); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Invalid name
	if _, err := NewUser("jihoon@example.com", "password123", "", "", ""); err != ErrEmptyName {
		t.Errorf("Expected error %v, got %v", ErrEmptyName, err)
	}

	// Invalid password
	if _, err := NewUser("jihoon@example.com", "short", "Jihoon", "", ""); err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}
}

func TestUserValidate_StoredUserNeedsHash(t *testing.T) {
	user := User{
		ID:    uuid.New(),
		Email: "jihoon@example.com",
		Name:  "Jihoon",
		Role:  RoleUser,
	}

	if err := user.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}

	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestRoleValidity(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleExpert, RoleContent, RoleAdmin} {
		if !role.Valid() {
			t.Errorf("Expected role %s to be valid", role)
		}
	}
	if Role("superuser").Valid() {
		t.Error("Expected unknown role to be invalid")
	}
}

func TestRoleSurfaces(t *testing.T) {
	cases := []struct {
		role           Role
		atLeastExpert  bool
		atLeastContent bool
	}{
		{RoleUser, false, false},
		{RoleExpert, true, false},
		{RoleContent, true, true},
		{RoleAdmin, true, true},
	}

	for _, tc := range cases {
		if got := tc.role.AtLeastExpert(); got != tc.atLeastExpert {
			t.Errorf("%s.AtLeastExpert() = %v, want %v", tc.role, got, tc.atLeastExpert)
		}
		if got := tc.role.AtLeastContent(); got != tc.atLeastContent {
			t.Errorf("%s.AtLeastContent() = %v, want %v", tc.role, got, tc.atLeastContent)
		}
	}
}
