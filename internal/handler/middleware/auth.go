package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"eventcast/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ctxServiceSubjectKey = "service_subject"
	ctxServiceScopeKey   = "service_scope"
)

// TokenValidator authenticates service tokens. Distribution endpoints are
// called by trusted internal services, not end users.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Service token required"},
			})
			c.Abort()
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			c.Abort()
			return
		}

		c.Set(ctxServiceSubjectKey, claims.Subject)
		c.Set(ctxServiceScopeKey, claims.Scope)
		c.Next()
	}
}

// GetServiceSubject returns the authenticated caller identity from context.
func GetServiceSubject(c *gin.Context) (string, bool) {
	subject, exists := c.Get(ctxServiceSubjectKey)
	if !exists {
		return "", false
	}
	s, ok := subject.(string)
	return s, ok
}
