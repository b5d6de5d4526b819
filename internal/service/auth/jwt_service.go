package auth

import (
	"context"
	"time"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token containing the user's
	// identity and role. Returns the token string or an error if token
	// generation fails.
	GenerateToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateToken validates the provided access token string and extracts
	// the claims. Returns an error if validation fails (expired, invalid
	// signature, wrong type, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token. Refresh
	// tokens have a longer lifetime and are used to obtain new access
	// tokens.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateRefreshToken validates the provided refresh token string and
	// extracts the claims. Returns an error if validation fails (expired,
	// invalid signature, wrong token type, etc.).
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Role is the user's role at issue time. Handlers treat it as a hint;
	// role-gated writes re-check the stored role.
	Role domain.Role `json:"role,omitempty"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	// Used to prevent token misuse across different contexts.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
