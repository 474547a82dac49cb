package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bizdesk/docs"
	"bizdesk/internal/config"
	"bizdesk/internal/domain"
	"bizdesk/internal/handler"
	"bizdesk/internal/middleware"
	"bizdesk/internal/service"
)

// Handlers bundles everything Setup mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Customer      *handler.CustomerHandler
	Supplier      *handler.SupplierHandler
	Catalog       *handler.CatalogHandler
	Invoice       *handler.InvoiceHandler
	CreditNote    *handler.CreditNoteHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Stats         *handler.StatsHandler
	Attachment    *handler.AttachmentHandler
	Export        *handler.ExportHandler
	Health        *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, authSvc service.AuthService, h Handlers) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", h.Auth.Me)

	// User management (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(domain.RoleAdmin))
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)

	// Customers
	customers := protected.Group("/customers")
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.GetByID)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Customer.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	suppliers.POST("", h.Supplier.Create)
	suppliers.GET("", h.Supplier.List)
	suppliers.GET("/:id", h.Supplier.GetByID)
	suppliers.PUT("/:id", h.Supplier.Update)
	suppliers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Supplier.Delete)

	// Catalog
	catalog := protected.Group("/catalog")
	catalog.POST("", h.Catalog.Create)
	catalog.GET("", h.Catalog.List)
	catalog.GET("/:id", h.Catalog.GetByID)
	catalog.PUT("/:id", h.Catalog.Update)
	catalog.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Catalog.Delete)

	// Invoices
	invoices := protected.Group("/invoices")
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.GET("/:id/lines", h.Invoice.Lines)
	invoices.POST("/:id/send", h.Invoice.Send)
	invoices.POST("/:id/void", middleware.RequireRole(domain.RoleAdmin), h.Invoice.Void)

	// Credit notes
	creditNotes := protected.Group("/credit-notes")
	creditNotes.POST("", h.CreditNote.Create)
	creditNotes.GET("", h.CreditNote.List)
	creditNotes.GET("/:id", h.CreditNote.GetByID)
	creditNotes.GET("/:id/edit-state", h.CreditNote.EditState)
	creditNotes.PUT("/:id", h.CreditNote.Update)
	creditNotes.POST("/:id/process", h.CreditNote.Process)
	creditNotes.DELETE("/:id", h.CreditNote.Delete)

	// Purchase orders
	orders := protected.Group("/purchase-orders")
	orders.POST("", h.PurchaseOrder.Create)
	orders.GET("", h.PurchaseOrder.List)
	orders.GET("/:id", h.PurchaseOrder.GetByID)
	orders.POST("/:id/status", h.PurchaseOrder.UpdateStatus)
	orders.POST("/:id/convert", h.PurchaseOrder.Convert)

	// Dashboard
	protected.GET("/stats/dashboard", h.Stats.Dashboard)

	// Attachments
	attachments := protected.Group("/attachments")
	attachments.POST("/:refType/:refID", h.Attachment.Upload)
	attachments.GET("/:refType/:refID", h.Attachment.List)
	attachments.GET("/:refType/:refID/:id/download", h.Attachment.Download)
	attachments.DELETE("/:refType/:refID/:id", h.Attachment.Delete)

	// Register exports
	exports := protected.Group("/exports")
	exports.GET("/invoices", h.Export.Invoices)
	exports.GET("/credit-notes", h.Export.CreditNotes)

	return r
}
