package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthealth-backend/internal/account"
	"smarthealth-backend/internal/assessments"
	googleauth "smarthealth-backend/internal/auth"
	"smarthealth-backend/internal/clinics"
	"smarthealth-backend/internal/shared/config"
	"smarthealth-backend/internal/shared/metrics"
	"smarthealth-backend/internal/shared/server/middleware"
	"smarthealth-backend/internal/shared/server/respond"
	"smarthealth-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	AssessmentHandler *assessments.Handler
	ClinicHandler     *clinics.Handler
	AccountHandler    *account.Handler
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"SUBMIT": {Rate: 1, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/risk-checks" {
					return "SUBMIT"
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}
	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.RegisterRoutes(api)
	}
	if deps.ClinicHandler != nil {
		deps.ClinicHandler.RegisterRoutes(api)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(deps.Config.IsAdmin))
		deps.ClinicHandler.RegisterAdminRoutes(admin)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
