package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/qrdocs/deposit-system/internal/api/handler"
	"github.com/qrdocs/deposit-system/internal/api/middleware"
	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// Dependencies carries everything the router needs. Services arrive as
// ports so the composition root decides which backends stand behind them.
type Dependencies struct {
	Sessions     ports.SessionService
	Ledger       ports.LedgerService
	Directory    ports.DirectoryService
	Renderer     ports.CodeRenderer
	JWTSecret    string
	Logger       zerolog.Logger
	HealthChecks []handler.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	// HTTP metrics live in a per-router registry so building several routers
	// in one process never double-registers; /metrics serves both it and the
	// process-wide application metrics.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "deposit",
		Registerer: httpMetrics,
	}))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	documentHandler := handler.NewDocumentHandler(deps.Ledger, deps.Renderer)
	formHandler := handler.NewFormHandler(deps.Ledger)
	userHandler := handler.NewUserHandler(deps.Directory)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks...)

	auth := middleware.Auth(deps.JWTSecret)

	// --- Session routes (no auth required) ---
	v1 := e.Group("/v1")
	v1.POST("/session/login", sessionHandler.Login)
	v1.POST("/session/login/privileged", sessionHandler.LoginPrivileged)
	v1.POST("/session/logout", sessionHandler.Logout)

	// --- Ledger routes ---
	docs := v1.Group("/documents", auth)
	docs.POST("", documentHandler.Create, middleware.RequireCapability(domain.CapCreateDocument))
	docs.GET("", documentHandler.List)
	docs.GET("/code/:code", documentHandler.LookupByCode)
	docs.GET("/code/:code/form", formHandler.ForDocument)
	docs.GET("/:code/qr", documentHandler.CodeImage)
	docs.POST("/:id/issue", documentHandler.Issue)
	docs.DELETE("/:id", documentHandler.Delete, middleware.RequireCapability(domain.CapDeleteDocument))

	v1.GET("/archive", documentHandler.ListArchive, auth, middleware.RequireCapability(domain.CapViewArchive))
	v1.GET("/forms/blank", formHandler.Blank, auth)

	// --- Directory routes ---
	users := v1.Group("/users", auth, middleware.RequireCapability(domain.CapManageUsers))
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.POST("/:username/block", userHandler.Block)
	users.POST("/:username/unblock", userHandler.Unblock)
	users.PUT("/:username/role", userHandler.ReassignRole)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)     // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))

	return e
}
