// Package middleware provides HTTP middleware for the auth service.
package middleware

import (
	"net/http"
	"strings"

	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/models"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	userContextKey   = "auth.user"
	claimsContextKey = "auth.claims"

	// UnauthenticatedMessage is the only error text auth failures expose.
	UnauthenticatedMessage = "invalid credentials"
)

// RequireIdentity resolves the bearer token on every request and aborts
// with 401 when it cannot. Handlers behind it read the caller with CurrentUser.
func RequireIdentity(resolver service.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortUnauthenticated(c)
			return
		}

		user, claims, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			AbortUnauthenticated(c)
			return
		}

		c.Set(userContextKey, user)
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after RequireIdentity.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			AbortUnauthenticated(c)
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity attached by RequireIdentity.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// CurrentClaims returns the verified token claims attached by RequireIdentity.
func CurrentClaims(c *gin.Context) (*service.Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*service.Claims)
	return claims, ok && claims != nil
}

// AbortUnauthenticated writes the uniform 401 response with a Bearer challenge.
func AbortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": UnauthenticatedMessage})
}

// BearerToken extracts the token from an Authorization header value of the
// form "Bearer <token>". The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
