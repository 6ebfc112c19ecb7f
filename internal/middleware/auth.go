package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"formiverse/internal/models"
	"formiverse/internal/repositories"
	"formiverse/internal/services"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	ctxUserKey   = "user"
	ctxUserIDKey = "user_id"
)

// extractAccessToken reads the bearer header first, then the cookie.
func extractAccessToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// AuthMiddleware verifies the access token and attaches the owning user
// (secrets stripped) to the request context.
func AuthMiddleware(auth services.AuthService, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		tokenStr := extractAccessToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": http.StatusUnauthorized, "message": "Unauthorized request",
			})
			return
		}

		claims, err := auth.VerifyAccessToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": http.StatusUnauthorized, "message": "Invalid or expired access token",
			})
			return
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": http.StatusUnauthorized, "message": "Invalid access token",
			})
			return
		}
		// never let stored secrets travel further down the chain
		user.PasswordHash = ""
		user.RefreshTokenHash = nil

		c.Set(ctxUserKey, user)
		c.Set(ctxUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
