// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"varotra/internal/domain/catalogs/customer"
	"varotra/internal/domain/catalogs/product"
	"varotra/internal/domain/documents/invoice"
	"varotra/internal/domain/documents/sale"
	"varotra/internal/domain/invoicedoc"
	"varotra/internal/domain/reports"
	"varotra/internal/infrastructure/http/v1/handlers"
	"varotra/internal/infrastructure/http/v1/middleware"
	"varotra/internal/infrastructure/storage/postgres"
	"varotra/pkg/logger"
)

// RouterConfig holds the services the router exposes.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	Products   *product.Service
	Customers  *customer.Service
	Sales      *sale.Service
	Invoices   *invoice.Service
	InvoiceDoc *invoicedoc.Builder
	Reports    *reports.Service
	Audit      *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID(cfg.Logger))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// API v1
	api := router.Group("/api/v1")
	{
		registerProductRoutes(api, base, cfg)
		registerCustomerRoutes(api, base, cfg)
		registerSaleRoutes(api, base, cfg)
		registerInvoiceRoutes(api, base, cfg)
		registerReportRoutes(api, base, cfg)
		registerAuditRoutes(api, base, cfg)
	}

	return router
}

// registerProductRoutes registers product catalog endpoints.
func registerProductRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewProductHandler(base, cfg.Products)

	group := rg.Group("/products")
	{
		group.GET("", handler.List)
		group.POST("", handler.Create)

		// Static routes before the :id wildcard.
		group.GET("/low-stock", handler.LowStock)
		group.GET("/categories", handler.Categories)
		group.GET("/code/:code", handler.GetByCode)

		group.GET("/:id", handler.Get)
		group.PUT("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
		group.POST("/:id/active", handler.SetActive)
	}
}

// registerCustomerRoutes registers customer catalog endpoints.
func registerCustomerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewCustomerHandler(base, cfg.Customers)

	group := rg.Group("/customers")
	{
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/code/:code", handler.GetByCode)
		group.GET("/:id", handler.Get)
		group.PUT("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
		group.POST("/:id/active", handler.SetActive)
	}
}

// registerSaleRoutes registers sale document endpoints.
func registerSaleRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewSaleHandler(base, cfg.Sales)
	invoiceHandler := handlers.NewInvoiceHandler(base, cfg.Invoices, cfg.InvoiceDoc)

	group := rg.Group("/sales")
	{
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/number/:number", handler.GetByNumber)
		group.GET("/:id", handler.Get)
		group.GET("/:id/invoice", invoiceHandler.GetBySale)
	}
}

// registerInvoiceRoutes registers invoice endpoints.
func registerInvoiceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewInvoiceHandler(base, cfg.Invoices, cfg.InvoiceDoc)

	group := rg.Group("/invoices")
	{
		group.GET("", handler.List)
		group.POST("/mark-overdue", handler.MarkOverdue)
		group.GET("/number/:number", handler.GetByNumber)
		group.GET("/:id", handler.Get)
		group.POST("/:id/status", handler.SetStatus)
		group.GET("/:id/document", handler.Document)
	}
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewReportsHandler(base, cfg.Reports)

	group := rg.Group("/reports")
	{
		group.GET("/monthly-sales", handler.MonthlySales)
		group.GET("/top-products", handler.TopProducts)
		group.GET("/top-customers", handler.TopCustomers)
		group.GET("/dashboard", handler.Dashboard)
	}
}

// registerAuditRoutes registers the audit trail endpoint.
func registerAuditRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewAuditHandler(base, cfg.Audit)

	rg.GET("/audit/:entity/:id", handler.History)
}
