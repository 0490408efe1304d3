package api

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketplace/identity-service/internal/api/handler"
	"github.com/marketplace/identity-service/internal/api/middleware"
	"github.com/marketplace/identity-service/internal/core/ports"
	"github.com/marketplace/identity-service/internal/core/service"
	mongodb "github.com/marketplace/identity-service/internal/infrastructure/db/mongo"
)

// RouterConfig carries the transport-level settings the router needs.
type RouterConfig struct {
	// SessionSecret signs the session cookie.
	SessionSecret string
	// CookieMaxAge is the session cookie lifetime in seconds.
	CookieMaxAge int
	// AdminRoles gates the /admin surface; empty leaves it open.
	AdminRoles []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when sessions are backed in-memory.
func NewRouter(db *mongo.Database, rdb *redis.Client, sessionStore ports.SessionStore, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte(cfg.SessionSecret))))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	hasher := service.NewBcryptHasher()
	authService := service.NewAuthService(accountRepo, sessionStore, hasher, log)
	directoryService := service.NewDirectoryService(accountRepo)
	adminService := service.NewAdminService(accountRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.CookieMaxAge)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	adminHandler := handler.NewAdminHandler(directoryService, adminService)

	// --- Identity routes ---
	api := e.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/users", directoryHandler.ListAll)
	api.GET("/users/:role", directoryHandler.ListByRole)

	// --- Admin routes ---
	admin := e.Group("/admin")
	if len(cfg.AdminRoles) > 0 {
		admin.Use(middleware.SessionAuth(sessionStore))
		admin.Use(middleware.RequireRole(cfg.AdminRoles...))
	}
	admin.GET("/users", adminHandler.ListAll)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.DELETE("/sellers/:id", adminHandler.DeleteSeller)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
