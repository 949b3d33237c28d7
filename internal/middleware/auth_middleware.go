package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/auth"
	"github.com/yigit/unishare/internal/pkg/logger"
)

// currentUserKey is the gin context key holding the authenticated caller
const currentUserKey = "currentUser"

// AuthMiddleware resolves the caller from the bearer token
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// OptionalAuth sets the current user when the request carries a valid token.
// A missing or invalid token leaves the request anonymous; handlers decide
// whether anonymity is acceptable. Expired tokens are logged at warn level.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		user, err := m.jwtService.Authenticate(authHeader)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				logger.Warn().Str("path", c.Request.URL.Path).Msg("Ignoring expired bearer token")
			} else {
				logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Ignoring unusable bearer token")
			}
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// GetCurrentUser returns the authenticated caller or nil
func GetCurrentUser(c *gin.Context) *auth.CurrentUser {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*auth.CurrentUser)
	return user
}
