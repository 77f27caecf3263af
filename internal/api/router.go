package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/shopwarehouse/warehouse-api/docs" // swagger docs
	"github.com/shopwarehouse/warehouse-api/internal/api/handler"
	"github.com/shopwarehouse/warehouse-api/internal/api/middleware"
	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	Auth      ports.AuthService
	Verifier  ports.TokenVerifier
	Inventory ports.InventoryService
	Products  ports.ProductService
	Log       zerolog.Logger

	AuthRateLimit float64
	AuthRateBurst int
	CORSOrigins   []string

	// HealthChecks are pinged by /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Pinger

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	if len(d.CORSOrigins) > 0 {
		e.Use(middleware.CORS(d.CORSOrigins))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "warehouse",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	inventoryHandler := handler.NewInventoryHandler(d.Inventory)
	productHandler := handler.NewProductHandler(d.Products)

	authn := middleware.Auth(d.Verifier)
	anyone := middleware.Require(domain.AccessAny)
	staff := middleware.Require(domain.AccessEmployeeOrAdmin)
	adminOnly := middleware.Require(domain.AccessAdminOnly)
	throttle := middleware.AuthRateLimiter(d.AuthRateLimit, d.AuthRateBurst)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register/customer", authHandler.RegisterCustomer, throttle)
	auth.POST("/register/employee", authHandler.RegisterEmployee, authn, staff)
	auth.POST("/register/admin", authHandler.RegisterAdmin, authn, staff)
	auth.POST("/login", authHandler.Login, throttle)
	auth.POST("/logout", authHandler.Logout, authn, anyone)
	auth.GET("/me", authHandler.Me, authn, anyone)

	// --- Inventory routes ---
	inv := e.Group("/inventory")
	inv.GET("", inventoryHandler.List)
	inv.GET("/product", inventoryHandler.Product)
	inv.GET("/low-stock", inventoryHandler.LowStock)
	inv.GET("/stats", inventoryHandler.Stats)
	inv.PUT("/receive", inventoryHandler.Receive, authn, staff)
	inv.PUT("/pick", inventoryHandler.Pick, authn, staff)
	inv.PUT("/adjust", inventoryHandler.Adjust, authn, staff)

	// --- Product routes ---
	products := e.Group("/products")
	products.GET("/allProducts", productHandler.All)
	products.GET("/product", productHandler.Get)
	products.POST("/create", productHandler.Create, authn, staff)
	products.PUT("/update", productHandler.Update, authn, staff)
	products.DELETE("/delete", productHandler.Delete, authn, adminOnly)

	// --- Health checks, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
