package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"smarthealth-backend/internal/account"
	"smarthealth-backend/internal/assessments"
	googleauth "smarthealth-backend/internal/auth"
	"smarthealth-backend/internal/clinics"
	"smarthealth-backend/internal/shared/config"
	"smarthealth-backend/internal/shared/server"
	"smarthealth-backend/internal/shared/storage/db"
	"smarthealth-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client

	AssessmentRepo assessments.Repo
	ClinicRepo     clinics.Repo
	UsersRepo      users.Repo

	AssessmentService *assessments.Service
	ClinicService     *clinics.Service
	AccountService    *account.Service
	UsersService      *users.Service

	AssessmentHandler *assessments.Handler
	ClinicHandler     *clinics.Handler
	AccountHandler    *account.Handler
	UsersHandler      *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Redis:  buildRedis(ctx, cfg),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		AssessmentHandler: app.AssessmentHandler,
		ClinicHandler:     app.ClinicHandler,
		AccountHandler:    app.AccountHandler,
		UserHandler:       app.UsersHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// buildRedis returns nil when Redis is absent or unreachable; callers treat a
// nil client as cache-disabled.
func buildRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("bootstrap: redis unreachable; clinic cache disabled: %v", err)
		client.Close()
		return nil
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var assessmentRepo assessments.Repo
	var clinicRepo clinics.Repo
	var userRepo users.Repo

	if app.DB != nil {
		assessmentRepo = &assessments.PGRepo{DB: app.DB}
		clinicRepo = &clinics.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		assessmentRepo = assessments.NewMemoryRepo()
		clinicRepo = clinics.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	assessmentSvc := assessments.NewService(assessmentRepo)
	clinicSvc := clinics.NewService(clinicRepo, clinics.NewListingCache(app.Redis))
	userSvc := users.NewService(userRepo)

	app.AssessmentRepo = assessmentRepo
	app.ClinicRepo = clinicRepo
	app.UsersRepo = userRepo
	app.AssessmentService = assessmentSvc
	app.ClinicService = clinicSvc
	app.AccountService = account.NewService(assessmentSvc)
	app.UsersService = userSvc
	app.AssessmentHandler = assessments.NewHandler(assessmentSvc)
	app.ClinicHandler = clinics.NewHandler(clinicSvc)
	app.AccountHandler = account.NewHandler(app.AccountService)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)
}
