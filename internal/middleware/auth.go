package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modulehub/modulehub-backend/internal/apierr"
	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/requestdata"
	"github.com/modulehub/modulehub-backend/internal/services"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLog := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLog, authService: authService}
}

// RequireAuth admits any authenticated user.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return am.handle("")
}

// RequireRole admits only authenticated users holding the given role. The
// role is passed straight into the authorization check; nothing is stashed in
// shared request state.
func (am *AuthMiddleware) RequireRole(role types.UserRole) gin.HandlerFunc {
	return am.handle(role)
}

func (am *AuthMiddleware) handle(requiredRole types.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		user, session, err := am.authService.Authorize(c.Request.Context(), token, requiredRole)
		if err != nil {
			ae := apierr.From(err)
			c.AbortWithStatusJSON(ae.Status, gin.H{"error": ae.Msg})
			return
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			User:    user,
			Session: session,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	if cookie, err := c.Cookie("session_token"); err == nil && cookie != "" {
		return cookie
	}
	return ""
}
