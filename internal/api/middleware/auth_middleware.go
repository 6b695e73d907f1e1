package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"showfolio/internal/auth"
)

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// AuthMiddleware validates the access token and injects the identity into
// the request context. It accepts a Bearer header or the session cookie set
// for the page surface.
func AuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := bearerToken(c)
		if rawToken == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				rawToken = cookie
			}
		}
		if strings.TrimSpace(rawToken) == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(rawToken)
		if err != nil || claims.TokenType != "access" {
			abortUnauthorized(c)
			return
		}

		c.Set("profileID", claims.ProfileID)
		c.Set("role", claims.Role)
		c.Set("mustChangePassword", claims.MustChangePassword)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireRole rejects authenticated requests whose role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get("role")
		if !ok {
			abortUnauthorized(c)
			return
		}
		if got, ok := value.(string); !ok || got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// RequirePasswordChangeCompleted blocks accounts that still carry an
// admin-issued temporary password. Relies on the access-token claim so no
// DB lookup happens per request.
func RequirePasswordChangeCompleted() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get("mustChangePassword")
		if ok {
			if mustChange, ok := value.(bool); ok && mustChange {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "password change required"})
				return
			}
		}
		c.Next()
	}
}
