// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	appctx "vendorgate/internal/core/context"
	"vendorgate/internal/domain/auth"
	"vendorgate/internal/domain/catalogs/product"
	"vendorgate/internal/domain/catalogs/vendor"
	"vendorgate/internal/domain/documents/invoice"
	"vendorgate/internal/domain/documents/order"
	"vendorgate/internal/domain/pricing"
	"vendorgate/internal/domain/registers/creditledger"
	"vendorgate/internal/infrastructure/http/v1/handlers"
	"vendorgate/internal/infrastructure/http/v1/middleware"
	"vendorgate/internal/infrastructure/storage/postgres"
	"vendorgate/internal/infrastructure/storage/postgres/auth_repo"
	"vendorgate/internal/infrastructure/storage/postgres/catalog_repo"
	"vendorgate/internal/infrastructure/storage/postgres/document_repo"
	"vendorgate/internal/infrastructure/storage/postgres/pricing_repo"
	"vendorgate/internal/infrastructure/storage/postgres/register_repo"
	"vendorgate/pkg/logger"
	"vendorgate/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks, numerator).
	Pool *postgres.Pool

	// TxManager runs repository work in transactions.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// JWTService signs and validates session tokens.
	JWTService *auth.JWTService

	// TaxRates are applied at invoice generation.
	TaxRates []invoice.TaxRate

	// Audit records change history for price edits and document state
	// changes. Optional; nil disables auditing.
	Audit *postgres.AuditService
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

	// Shared infrastructure
	gen := numerator.New(cfg.Pool)
	baseHandler := handlers.NewBaseHandler(cfg.Audit)

	// Repositories
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	vendorRepo := catalog_repo.NewVendorRepo(cfg.TxManager)
	overrideRepo := pricing_repo.NewOverrideRepo(cfg.TxManager)
	orderRepo := document_repo.NewOrderRepo(cfg.TxManager)
	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	ledgerRepo := register_repo.NewCreditLedgerRepo(cfg.TxManager)
	userRepo := auth_repo.NewUserRepo(cfg.TxManager)

	// Services
	productService := product.NewService(productRepo, gen)
	vendorService := vendor.NewService(vendorRepo, gen)
	pricingService := pricing.NewService(overrideRepo)
	orderService := order.NewService(orderRepo, productService, vendorService, pricingService, gen, cfg.TxManager)
	invoiceService := invoice.NewService(invoiceRepo, orderRepo, gen, cfg.TxManager, cfg.TaxRates)
	creditService := creditledger.NewService(ledgerRepo, cfg.TxManager)
	authService := auth.NewService(userRepo, cfg.JWTService)

	// Handlers
	authHandler := handlers.NewAuthHandler(baseHandler, authService)
	productHandler := handlers.NewProductHandler(baseHandler, productService, pricingService)
	vendorHandler := handlers.NewVendorHandler(baseHandler, vendorService)
	orderHandler := handlers.NewOrderHandler(baseHandler, orderService)
	invoiceHandler := handlers.NewInvoiceHandler(baseHandler, invoiceService)
	creditHandler := handlers.NewCreditHandler(baseHandler, creditService, invoiceService)
	pricingHandler := handlers.NewPricingHandler(baseHandler, pricingService)

	api := router.Group("/api/v1")
	{
		// Public auth endpoints
		api.POST("/auth/login", authHandler.Login)

		// Everything else requires a valid session
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTService))

		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/change-password", authHandler.ChangePassword)
		protected.POST("/auth/register", middleware.RequireAdmin(), authHandler.Register)

		staffOnly := middleware.RequireRole(appctx.RoleDistributor)

		// Product administration (distributor staff)
		products := protected.Group("/products", staffOnly)
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.GetByID)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.GET("/:id/history", productHandler.History)
		}

		// Vendor-facing priced catalog (both roles)
		catalog := protected.Group("/catalog")
		{
			catalog.GET("", productHandler.Catalog)
			catalog.GET("/:id/price", productHandler.Price)
		}

		// Vendor account administration (distributor staff)
		vendors := protected.Group("/vendors", staffOnly)
		{
			vendors.POST("", vendorHandler.Create)
			vendors.GET("", vendorHandler.List)
			vendors.GET("/:id", vendorHandler.GetByID)
			vendors.PUT("/:id", vendorHandler.Update)
			vendors.DELETE("/:id", vendorHandler.Delete)
			vendors.PUT("/:id/credit-hold", vendorHandler.SetCreditHold)
		}

		// Orders (vendor users scoped to their own account)
		orders := protected.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.GetByID)
			orders.GET("/:id/rendered", orderHandler.Rendered)
			orders.POST("/:id/lines", orderHandler.AddLine)
			orders.POST("/:id/manual-lines", orderHandler.AddManualLine)
			orders.PATCH("/:id/lines/:lineId", staffOnly, orderHandler.EditLine)
			orders.DELETE("/:id/lines/:lineId", orderHandler.RemoveLine)
			orders.POST("/:id/submit", orderHandler.Submit)
			orders.POST("/:id/cancel", orderHandler.Cancel)
			orders.POST("/:id/invoice", staffOnly, invoiceHandler.Generate)
			orders.GET("/:id/invoice", invoiceHandler.GetByOrder)
			orders.GET("/:id/amount-due", creditHandler.AmountDue)
		}

		// Invoices (read-only once generated)
		invoices := protected.Group("/invoices")
		{
			invoices.GET("", invoiceHandler.List)
			invoices.GET("/:id", invoiceHandler.GetByID)
			invoices.GET("/:id/rendered", invoiceHandler.Rendered)
		}

		// Store credit
		credit := protected.Group("/credit")
		{
			credit.GET("/balance", creditHandler.Balance)
			credit.GET("/history", creditHandler.History)
			credit.POST("/add", staffOnly, creditHandler.Add)
			credit.POST("/deduct", staffOnly, creditHandler.Deduct)
			credit.POST("/apply", creditHandler.Apply)
			credit.POST("/entries/:id/reverse", staffOnly, creditHandler.Reverse)
		}

		// Pricing administration (distributor staff)
		pricingGroup := protected.Group("/pricing", staffOnly)
		{
			pricingGroup.PUT("/vendor-overrides", pricingHandler.SetVendorOverride)
			pricingGroup.DELETE("/vendor-overrides/:vendorId/:productId", pricingHandler.ClearVendorOverride)
			pricingGroup.PUT("/bulk-tiers", pricingHandler.SetBulkPricing)
			pricingGroup.POST("/bulk-edit", pricingHandler.BulkEdit)
		}
	}

	return router
}
