// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"faktura/internal/core/numerator"
	"faktura/internal/domain/audit"
	"faktura/internal/domain/auth"
	"faktura/internal/domain/catalogs/account"
	"faktura/internal/domain/catalogs/customer"
	"faktura/internal/domain/catalogs/product"
	"faktura/internal/domain/catalogs/supplier"
	"faktura/internal/domain/event"
	"faktura/internal/domain/invoice"
	"faktura/internal/domain/ledger"
	"faktura/internal/domain/payment"
	"faktura/internal/domain/quote"
	"faktura/internal/domain/registers/stock"
	"faktura/internal/domain/reports"
	"faktura/internal/domain/settings"
	"faktura/internal/infrastructure/http/v1/handlers"
	"faktura/internal/infrastructure/http/v1/middleware"
	"faktura/internal/infrastructure/storage/postgres"
	"faktura/internal/infrastructure/storage/postgres/catalog_repo"
	"faktura/internal/infrastructure/storage/postgres/document_repo"
	"faktura/internal/infrastructure/storage/postgres/register_repo"
	"faktura/internal/infrastructure/storage/postgres/report_repo"
	"faktura/internal/infrastructure/storage/postgres/settings_repo"
	"faktura/pkg/logger"
)

// RouterConfig holds router wiring dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations and transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document number generation
	Numerator numerator.Generator

	// Auditor records entity change history. Optional.
	Auditor audit.Recorder

	// Events publishes domain events to the outbox. Optional.
	Events event.Publisher

	// IdempotencyStore enables the idempotency middleware when set.
	IdempotencyStore *postgres.IdempotencyStore
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		if cfg.IdempotencyStore != nil {
			protected.Use(middleware.Idempotency(cfg.IdempotencyStore))
		}

		registerCatalogRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerRegisterRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
		registerSettingsRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	public := rg.Group("/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.POST("/refresh", authHandler.Refresh)
	}

	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	{
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/me", authHandler.Me)
		protected.POST("/change-password", authHandler.ChangePassword)
	}
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewCustomerHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/customers"), handler)
	}

	// --- SUPPLIERS ---
	{
		repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
		service := supplier.NewService(repo, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewSupplierHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler)
	}

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewProductHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/products"), handler)
	}

	// --- ACCOUNTS ---
	{
		repo := catalog_repo.NewAccountRepo(cfg.TxManager)
		service := account.NewService(repo, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewAccountHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/accounts"), handler)
	}
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docs := rg.Group("/documents")
	baseHandler := handlers.NewBaseHandler()

	// Catalog services shared by the document handlers for snapshots.
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	customerService := customer.NewService(customerRepo, cfg.Numerator, cfg.TxManager)
	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)
	supplierService := supplier.NewService(supplierRepo, cfg.Numerator, cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	productService := product.NewService(productRepo, cfg.Numerator, cfg.TxManager)
	accountRepo := catalog_repo.NewAccountRepo(cfg.TxManager)

	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	stockRepo := register_repo.NewStockRepo(cfg.TxManager)

	propagator := ledger.NewPropagator(customerRepo, supplierRepo, accountRepo, invoiceRepo, stockRepo)

	// --- QUOTES ---
	{
		repo := document_repo.NewQuoteRepo(cfg.TxManager)
		service := quote.NewService(repo, cfg.Numerator, cfg.TxManager, cfg.Auditor, cfg.Events)
		handler := handlers.NewQuoteHandler(baseHandler, service, customerService, productService)

		group := docs.Group("/quotes")
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/pending", middleware.RequireAdmin(), handler.ListPending)
		group.GET("/:id", handler.Get)
		group.PATCH("/:id/status", handler.UpdateStatus)
		group.DELETE("/:id", handler.Delete)
	}

	// --- INVOICES ---
	{
		service := invoice.NewService(invoiceRepo, cfg.Numerator, propagator, cfg.TxManager, cfg.Auditor, cfg.Events)
		handler := handlers.NewInvoiceHandler(baseHandler, service, customerService, supplierService, productService)

		group := docs.Group("/invoices")
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/:id", handler.Get)
		group.DELETE("/:id", handler.Delete)
	}

	// --- PAYMENTS ---
	{
		repo := document_repo.NewPaymentRepo(cfg.TxManager)
		service := payment.NewService(repo, propagator, cfg.TxManager, cfg.Auditor, cfg.Events)
		handler := handlers.NewPaymentHandler(baseHandler, service, customerService, supplierService)

		group := docs.Group("/payments")
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/:id", handler.Get)
		group.DELETE("/:id", handler.Delete)
	}
}

// registerRegisterRoutes registers accumulation register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	// Stock register (read-only; movements are written by invoices)
	{
		stockRepo := register_repo.NewStockRepo(cfg.TxManager)
		stockService := stock.NewService(stockRepo)
		stockHandler := handlers.NewStockHandler(baseHandler, stockService)

		group := registers.Group("/stock")
		group.GET("/balances", stockHandler.Balances)
		group.GET("/products/:id/balance", stockHandler.Balance)
		group.GET("/products/:id/movements", stockHandler.Movements)
		group.GET("/products/:id/turnover", stockHandler.Turnover)
	}
}

// registerSettingsRoutes registers the per-owner settings endpoints.
func registerSettingsRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	settingsRepo := settings_repo.NewSettingsRepo(cfg.TxManager)
	settingsService := settings.NewService(settingsRepo, cfg.TxManager)
	settingsHandler := handlers.NewSettingsHandler(baseHandler, settingsService)

	group := rg.Group("/settings")
	group.GET("", settingsHandler.Get)
	group.PUT("", settingsHandler.Update)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	group := rg.Group("/reports")
	group.GET("/receivables", reportHandler.Receivables)
	group.GET("/sales-summary", reportHandler.SalesSummary)
	group.GET("/journal", reportHandler.Journal)
}
