package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/minio/minio-go/v7"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/JoiePasaol/client-management-sub000/internal/api/handler"
	"github.com/JoiePasaol/client-management-sub000/internal/api/middleware"
	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
	"github.com/JoiePasaol/client-management-sub000/internal/core/service"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/config"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/db/postgres"
	redisinfra "github.com/JoiePasaol/client-management-sub000/internal/infrastructure/db/redis"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/queue"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/storage"
)

// Dependencies carries the infrastructure handles the router wires together.
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redisclient.Client
	Minio  *minio.Client
	Queue  *queue.Queue
	Logger zerolog.Logger
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
	e.Use(echoprometheus.NewMiddleware("clientmgmt"))

	// --- Repositories ---
	clientRepo := postgres.NewClientRepository(deps.DB, deps.Queue)
	projectRepo := postgres.NewProjectRepository(deps.DB, deps.Queue)
	paymentRepo := postgres.NewPaymentRepository(deps.DB, deps.Queue)
	updateRepo := postgres.NewUpdateRepository(deps.DB, deps.Queue)
	portalRepo := postgres.NewPortalRepository(deps.DB, deps.Queue)
	userRepo := postgres.NewUserRepository(deps.DB)

	tokenCache := redisinfra.NewPortalTokenCache(deps.Redis)
	invoiceStore := storage.NewInvoiceStore(deps.Minio, deps.Config.Minio.Bucket, deps.Config.Minio.PublicURL)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deps.Config.JWTSecret, 24*time.Hour)
	clientService := service.NewClientService(clientRepo, deps.Logger)
	projectService := service.NewProjectService(projectRepo, clientRepo, invoiceStore, deps.Logger)
	paymentService := service.NewPaymentService(paymentRepo, projectRepo, updateRepo, deps.Logger)
	updateService := service.NewUpdateService(updateRepo, projectRepo, deps.Logger)
	portalService := service.NewPortalService(portalRepo, projectRepo, clientRepo, tokenCache, deps.Config.PublicURL, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	updateHandler := handler.NewUpdateHandler(updateService)
	portalHandler := handler.NewPortalHandler(portalService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Unauthenticated portal view ---
	e.GET("/client-portal/:token", portalHandler.PublicView)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis, deps.Minio, deps.Config.Minio.Bucket)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(deps.Config.JWTSecret))
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1.POST("/clients", clientHandler.Create)
	v1.GET("/clients", clientHandler.List)
	v1.GET("/clients/:id", clientHandler.Get)
	v1.PUT("/clients/:id", clientHandler.Update)
	v1.DELETE("/clients/:id", clientHandler.Delete, adminOnly)

	v1.POST("/projects", projectHandler.Create)
	v1.GET("/projects", projectHandler.List)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.PUT("/projects/:id", projectHandler.Update)
	v1.DELETE("/projects/:id", projectHandler.Delete, adminOnly)
	v1.POST("/projects/:id/invoice", projectHandler.AttachInvoice)

	v1.POST("/projects/:id/payments", paymentHandler.Record)
	v1.GET("/projects/:id/payments", paymentHandler.List)
	v1.DELETE("/payments/:id", paymentHandler.Delete, adminOnly)

	v1.POST("/projects/:id/updates", updateHandler.Add)
	v1.GET("/projects/:id/updates", updateHandler.List)
	v1.PUT("/updates/:id", updateHandler.Edit)
	v1.DELETE("/updates/:id", updateHandler.Delete)

	v1.POST("/projects/:id/portal", portalHandler.Create)
	v1.GET("/projects/:id/portal", portalHandler.Get)
	v1.PATCH("/projects/:id/portal", portalHandler.SetEnabled)
	v1.DELETE("/projects/:id/portal", portalHandler.Delete, adminOnly)

	return e
}
