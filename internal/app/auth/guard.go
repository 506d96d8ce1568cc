package auth

import (
	"fmt"
	"strings"

	"github.com/yigit/coursehub/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/coursehub/internal/pkg/auth"
)

// Common authorization errors
var (
	ErrAuthenticationRequired = apperrors.NewUnauthorizedError("Authentication required")
	ErrAdminRequired          = apperrors.NewForbiddenError("Admin access required")
	ErrAccessDenied           = apperrors.NewForbiddenError("Access denied")
)

// TokenVerifier verifies a raw token and returns its claims
type TokenVerifier interface {
	ValidateToken(token string) (*pkgAuth.Claims, error)
}

// Guard derives the calling principal from a presented token
type Guard struct {
	tokens TokenVerifier
}

// NewGuard creates a new Guard
func NewGuard(tokens TokenVerifier) *Guard {
	return &Guard{tokens: tokens}
}

// Resolve maps an Authorization header value to a principal. An absent header
// yields Anonymous without error; a malformed, invalid or expired token yields
// Anonymous together with the reason.
func (g *Guard) Resolve(authHeader string) (Principal, error) {
	if strings.TrimSpace(authHeader) == "" {
		return Anonymous(), nil
	}

	token, err := pkgAuth.ExtractBearerToken(authHeader)
	if err != nil {
		return Anonymous(), err
	}

	claims, err := g.tokens.ValidateToken(token)
	if err != nil {
		return Anonymous(), err
	}

	id, err := claims.PrincipalID()
	if err != nil {
		return Anonymous(), err
	}
	p, err := FromRole(claims.Role, id)
	if err != nil {
		return Anonymous(), fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}
	return p, nil
}

// RequireAuthenticated fails with Unauthorized for anonymous callers
func RequireAuthenticated(p Principal) error {
	if p.IsAnonymous() {
		return ErrAuthenticationRequired
	}
	return nil
}

// RequireAdmin fails unless the caller is an admin
func RequireAdmin(p Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// RequireSelfOrAdmin fails unless the caller is the given student or an admin
func RequireSelfOrAdmin(p Principal, studentID int64) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.IsAdmin() || p.IsStudent(studentID) {
		return nil
	}
	return ErrAccessDenied
}
