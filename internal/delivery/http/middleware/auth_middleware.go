package middleware

import (
	"net/http"
	"strings"

	"ameencheck-backend/internal/delivery/http/response"
	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token (header first, auth_token cookie
// as fallback) and loads the user fresh from the database. The role stored in
// the token is treated as advisory only; the database copy is authoritative.
func AuthMiddleware(tokens *auth.TokenManager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if header := c.GetHeader("Authorization"); header != "" {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.Subject)
		if err != nil || user == nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), user.Role)
		c.Set(string(domain.KeyUserName), user.Name)

		c.Next()
	}
}

// RequireRole guards a route group for a single role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(string(domain.KeyUserRole))
		if userRole != role {
			response.Error(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
