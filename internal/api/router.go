package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/projecthub/portal-api/internal/api/handler"
	"github.com/projecthub/portal-api/internal/api/middleware"
	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/service"
	"github.com/projecthub/portal-api/internal/infrastructure/config"
	mongodb "github.com/projecthub/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/projecthub/portal-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// ctx bounds background work (the live search session reaper).
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	identityRepo := mongodb.NewIdentityRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL, log)

	authService := service.NewAuthService(identityRepo, sessionStore, cfg.JWTSecret, cfg.SessionTTL, log)
	guard := service.NewGuardService(sessionStore, log)

	clientDir := mongodb.NewClientDirectory(db)
	customerDir := mongodb.NewCustomerDirectory(db)
	projectDir := mongodb.NewProjectDirectory(db)

	// Adapter registration order fixes the merged hit order: client,
	// customer, project.
	searchService := service.NewSearchService(log,
		service.NewClientSearchAdapter(clientDir),
		service.NewCustomerSearchAdapter(customerDir),
		service.NewProjectSearchAdapter(projectDir),
	)

	authHandler := handler.NewAuthHandler(authService)
	searchHandler := handler.NewSearchHandler(searchService)
	liveHandler := handler.NewLiveSearchHandler(searchService, cfg.SearchDebounce(), log)
	liveHandler.StartReaper(ctx)
	dashboardHandler := handler.NewDashboardHandler(clientDir, customerDir, projectDir)

	authMW := middleware.Auth(cfg.JWTSecret)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMW)

	anyRole := middleware.Guard(guard)
	v1.POST("/auth/logout", authHandler.Logout, anyRole)
	v1.GET("/me", authHandler.Me, anyRole)

	v1.GET("/search", searchHandler.Search, anyRole)
	v1.POST("/search/live", liveHandler.Create, anyRole)
	v1.PUT("/search/live/:id", liveHandler.Keystroke, anyRole)
	v1.GET("/search/live/:id/events", liveHandler.Events, anyRole)
	v1.DELETE("/search/live/:id", liveHandler.Close, anyRole)

	// Role-gated dashboard views.
	v1.GET("/clients", dashboardHandler.ListClients, middleware.Guard(guard, domain.RoleAdmin))
	v1.GET("/customers", dashboardHandler.ListCustomers, middleware.Guard(guard, domain.RoleClient))
	v1.GET("/projects", dashboardHandler.ListProjects, middleware.Guard(guard, domain.RoleCustomer))

	return e
}
