package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SonJH7/Pium/internal/api/shared"
	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/redact"
	"github.com/SonJH7/Pium/internal/service/auth"
	"github.com/google/uuid"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates JWT tokens from the Authorization header and
// adds the user ID and role to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case auth.ErrInvalidToken, auth.ErrWrongTokenType:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Authentication error",
				)
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		ctx = context.WithValue(ctx, shared.UserRoleContextKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireExpert rejects requests whose token does not carry the expert
// surface. Must run after Authenticate.
func (m *AuthMiddleware) RequireExpert(next http.Handler) http.Handler {
	return requireRole(next, func(role domain.Role) bool { return role.AtLeastExpert() })
}

// RequireContent rejects requests whose token does not carry the
// content-manager surface. Must run after Authenticate.
func (m *AuthMiddleware) RequireContent(next http.Handler) http.Handler {
	return requireRole(next, func(role domain.Role) bool { return role.AtLeastContent() })
}

// RequireAdmin rejects requests whose token is not an admin token.
// Must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return requireRole(next, func(role domain.Role) bool { return role == domain.RoleAdmin })
}

func requireRole(next http.Handler, allowed func(domain.Role) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetUserRole(r)
		if !ok || !allowed(role) {
			shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// GetUserRole extracts the user role from the request context.
// Returns the role and a boolean indicating if it was found.
func GetUserRole(r *http.Request) (domain.Role, bool) {
	role, ok := r.Context().Value(shared.UserRoleContextKey).(domain.Role)
	return role, ok
}
