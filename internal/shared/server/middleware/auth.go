package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smarthealth-backend/internal/shared/auth"
	"smarthealth-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
)

// Auth validates JWTs or guest headers and stores identity in context.
// Public endpoints (health, clinic search, the question catalog, OAuth, and
// risk-check submission) stay reachable without any identity so anonymous
// assessments can still be recorded.
func Auth(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := auth.VerifyJWT(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			c.Set(userIDKey, claims.Sub)
			if claims.Email != "" {
				c.Set(userEmailKey, claims.Email)
			}
			if claims.Name != "" {
				c.Set(userNameKey, claims.Name)
			}
			c.Set("isGuest", false)
			c.Next()
			return
		}

		if guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id")); guestID != "" {
			c.Set(userIDKey, "guest:"+guestID)
			c.Set("isGuest", true)
			c.Next()
			return
		}

		if isPublicEndpoint(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
	}
}

func isPublicEndpoint(method, path string) bool {
	if strings.HasPrefix(path, "/api/v1/auth/google/") {
		return true
	}
	if path == "/api/v1/health" || path == "/api/v1/metrics" {
		return true
	}
	if path == "/api/v1/risk-checks/questions" {
		return true
	}
	// Anonymous risk checks are recorded without an owner.
	if method == http.MethodPost && path == "/api/v1/risk-checks" {
		return true
	}
	if method == http.MethodGet && path == "/api/v1/clinics" {
		return true
	}
	return false
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// UserNameFromContext fetches the user name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

// IsGuest reports whether the current identity is a guest header identity.
func IsGuest(c *gin.Context) bool {
	if c == nil {
		return false
	}
	val, ok := c.Get("isGuest")
	if !ok {
		return false
	}
	guest, _ := val.(bool)
	return guest
}

// RequireAdmin rejects requests whose identity is not in the admin allow list.
func RequireAdmin(isAdmin func(userID string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserIDFromContext(c)
		if userID == "" || IsGuest(c) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return
		}
		if !isAdmin(userID) {
			respond.Error(c, http.StatusForbidden, "forbidden", "administrator privileges required", nil)
			return
		}
		c.Next()
	}
}
