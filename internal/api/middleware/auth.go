package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
)

const userContextKey = "user"

// Auth is a Gin middleware for JWT authentication of API requests.
// The user row is reloaded on every request so role changes and deletions
// take effect immediately instead of waiting for the token to expire.
func Auth(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c, authService, userRepo)
		if !ok {
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

func authenticate(c *gin.Context, authService service.AuthService, userRepo repository.UserRepository) (*models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
		c.Abort()
		return nil, false
	}

	// Extract token (format: "Bearer <token>"); scheme is case-insensitive
	// and extra whitespace is tolerated per RFC 9110.
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		c.Abort()
		return nil, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return nil, false
	}

	user, err := userRepo.FindByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return nil, false
	}

	return user, true
}

// CurrentUser returns the authenticated user set by Auth, or nil for
// anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// Authorize gates a route on a policy decision. It runs after Auth and
// distinguishes "not logged in" from "not allowed".
func Authorize(p policy.Policy, action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := CurrentUser(c)
		if p.Allows(subject, action, nil) {
			c.Next()
			return
		}
		if subject == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		}
		c.Abort()
	}
}
