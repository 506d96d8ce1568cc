package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/auth"
)

// Context keys set by ResolvePrincipal
const (
	principalKey    = "principal"
	principalErrKey = "principalError"
)

// AuthMiddleware resolves the calling principal and gates routes on it
type AuthMiddleware struct {
	guard *auth.Guard
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(guard *auth.Guard) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// ResolvePrincipal derives the principal from the Authorization header and
// stores it in the context. It never aborts; public routes simply see an
// anonymous principal when the token is missing or bad.
func (m *AuthMiddleware) ResolvePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := m.guard.Resolve(c.GetHeader("Authorization"))
		c.Set(principalKey, p)
		if err != nil {
			c.Set(principalErrKey, err)
		}
		c.Next()
	}
}

// RequireAuthentication aborts with 401 unless a valid token was presented.
// The response tells an expired token apart from an invalid one.
func (m *AuthMiddleware) RequireAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err, ok := c.Get(principalErrKey); ok {
			HandleAPIError(c, err.(error))
			return
		}
		if err := auth.RequireAuthenticated(PrincipalFrom(c)); err != nil {
			HandleAPIError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 or 403 unless the caller is an admin
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireAdmin(PrincipalFrom(c)); err != nil {
			HandleAPIError(c, err)
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by ResolvePrincipal, or
// Anonymous when none was stored
func PrincipalFrom(c *gin.Context) auth.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(auth.Principal); ok {
			return p
		}
	}
	return auth.Anonymous()
}
