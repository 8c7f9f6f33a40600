package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"student-accommodation-portal/internal/models"
)

// Context keys set by the middleware for downstream handlers
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// bearerToken extracts the token from an "Authorization: Bearer ..." header
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Middleware validates tokens and enforces role membership on routes
type Middleware struct {
	issuer *TokenIssuer
}

// NewMiddleware creates the auth middleware set around a token issuer
func NewMiddleware(issuer *TokenIssuer) *Middleware {
	return &Middleware{issuer: issuer}
}

// Optional parses a token when one is present but never rejects the
// request. Used on public routes whose behavior differs for owners.
func (m *Middleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := m.issuer.Validate(token); err == nil {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxUsername, claims.Username)
				c.Set(CtxRole, claims.Role)
			}
		}
		c.Next()
	}
}

// Required rejects requests without a valid token
func (m *Middleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		claims, err := m.issuer.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// LandlordOnly gates the dashboard routes. Runs after Required. A
// non-landlord account is sent back to the public browse page with an
// error notice rather than an error page.
func (m *Middleware) LandlordOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := RoleFrom(c)
		if !exists || (role != models.RoleLandlord && role != models.RoleAdmin) {
			c.JSON(http.StatusSeeOther, gin.H{
				"redirect": "/accommodations/",
				"error":    "You need a landlord account to access the dashboard.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly gates the admin API routes
func (m *Middleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := RoleFrom(c)
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserIDFrom returns the authenticated user id stored on the context
func UserIDFrom(c *gin.Context) (uint, bool) {
	value, exists := c.Get(CtxUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// RoleFrom returns the authenticated role stored on the context
func RoleFrom(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(CtxRole)
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok
}
