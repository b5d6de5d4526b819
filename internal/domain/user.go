package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User-specific validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Role identifies what a user is allowed to do. Every account holds exactly
// one role; experts, content managers and admins retain the player surface.
type Role string

const (
	// RoleUser is the default role for new accounts: play the growth game,
	// browse the catalog, request missing plants, apply for expert status.
	RoleUser Role = "user"

	// RoleExpert may additionally publish and manage care tips.
	RoleExpert Role = "expert"

	// RoleContent may additionally curate the catalog, quiz steps and the
	// game economy configuration, and moderate tips.
	RoleContent Role = "content"

	// RoleAdmin may additionally manage accounts, decide expert
	// applications and read the audit trail.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the four recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleExpert, RoleContent, RoleAdmin:
		return true
	default:
		return false
	}
}

// AtLeastExpert reports whether the role carries the expert surface.
func (r Role) AtLeastExpert() bool {
	return r == RoleExpert || r == RoleContent || r == RoleAdmin
}

// AtLeastContent reports whether the role carries the content-manager surface.
func (r Role) AtLeastContent() bool {
	return r == RoleContent || r == RoleAdmin
}

// StartingPoints is the balance seeded into every newly registered account.
const StartingPoints int64 = 1000

// User represents a registered account. Points is the user's current point
// balance; it is mutated exclusively through ledger deltas so that every
// change has a matching LedgerEntry.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only set transiently during registration/updates
	HashedPassword string    `json:"-"` // Never exposed in JSON
	Name           string    `json:"name"`
	StudentID      string    `json:"student_id,omitempty"`
	Department     string    `json:"department,omitempty"`
	Role           Role      `json:"role"`
	Points         int64     `json:"points"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the default role and starting point
// balance. The caller is responsible for hashing the plaintext password
// before the user is stored.
func NewUser(email, password, name, studentID, department string) (*User, error) {
	user := &User{
		ID:         uuid.New(),
		Email:      strings.TrimSpace(email),
		Password:   password,
		Name:       strings.TrimSpace(name),
		StudentID:  strings.TrimSpace(studentID),
		Department: strings.TrimSpace(department),
		Role:       RoleUser,
		Points:     StartingPoints,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		// bcrypt truncates input beyond 72 bytes
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store must carry a hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs basic structural validation of an email address.
// Deliberately simple: the store's unique constraint is the real gatekeeper.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	dom := email[at+1:]
	dot := strings.IndexByte(dom, '.')
	return dot > 0 && dot < len(dom)-1
}
