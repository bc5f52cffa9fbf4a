package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/talentgate/applicant-registry/docs"
	"github.com/talentgate/applicant-registry/internal/api/handler"
	"github.com/talentgate/applicant-registry/internal/api/middleware"
	"github.com/talentgate/applicant-registry/internal/core/domain"
	"github.com/talentgate/applicant-registry/internal/core/service"
	mongorepo "github.com/talentgate/applicant-registry/internal/infrastructure/db/mongo"
	redisinfra "github.com/talentgate/applicant-registry/internal/infrastructure/db/redis"
	"github.com/talentgate/applicant-registry/internal/infrastructure/storage/fs"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, blobs *fs.BlobStore, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("applicant_registry"))

	// --- Dependencies ---
	applicantRepo := mongorepo.NewApplicantRepository(db)
	authRepo := mongorepo.NewAuthRepository(db)
	limiter := redisinfra.NewLoginLimiter(rdb)

	intakeService := service.NewIntakeService(applicantRepo, blobs, log)
	queryService := service.NewQueryService(applicantRepo, blobs, log)
	authService := service.NewAuthService(authRepo, limiter, jwtSecret, 24*time.Hour, log)

	applicantHandler := handler.NewApplicantHandler(intakeService, queryService)
	authHandler := handler.NewAuthHandler(authService)
	requireAdmin := []echo.MiddlewareFunc{middleware.Auth(jwtSecret), middleware.RBAC(domain.RoleAdmin)}

	// --- Admin auth ---
	e.POST("/api/admin/register", authHandler.Register)
	e.POST("/api/admin/login", authHandler.Login)

	// --- Applicant intake (public: the registration form posts here) ---
	e.POST("/api/users", applicantHandler.Create)

	// --- Applicant lookup (admin only) ---
	e.GET("/api/users/search", applicantHandler.Search, requireAdmin...)
	e.GET("/api/users/:id", applicantHandler.GetByID, requireAdmin...)
	e.GET("/api/users/:id/cv", applicantHandler.DownloadCV, requireAdmin...)

	// --- Stored files, exposed read-only under fixed public prefixes ---
	e.Static("/uploads/photos", blobs.Dir(domain.CategoryPhoto))
	e.Static("/uploads/cvs", blobs.Dir(domain.CategoryCV))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
