package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"bizdesk/internal/config"
	"bizdesk/internal/email/noop"
	"bizdesk/internal/email/ses"
	"bizdesk/internal/handler"
	"bizdesk/internal/port"
	"bizdesk/internal/repository/postgres"
	"bizdesk/internal/router"
	"bizdesk/internal/service"
	s3storage "bizdesk/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)
	catalogRepo := postgres.NewCatalogItemRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	noteRepo := postgres.NewCreditNoteRepo(db)
	orderRepo := postgres.NewPurchaseOrderRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	attachRepo := postgres.NewAttachmentRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo, tenantRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	catalogSvc := service.NewCatalogService(catalogRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, customerRepo, catalogRepo, emailSender)
	noteSvc := service.NewCreditNoteService(noteRepo, invoiceRepo, customerRepo, emailSender)
	orderSvc := service.NewPurchaseOrderService(orderRepo, supplierRepo, invoiceSvc)
	statsSvc := service.NewStatsService(statsRepo)
	attachSvc := service.NewAttachmentService(attachRepo, invoiceRepo, noteRepo, s3Client, &cfg.S3)
	exportSvc := service.NewExportService(invoiceRepo, noteRepo)

	// Initialize handlers
	h := router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, userSvc),
		User:          handler.NewUserHandler(userSvc),
		Customer:      handler.NewCustomerHandler(customerSvc),
		Supplier:      handler.NewSupplierHandler(supplierSvc),
		Catalog:       handler.NewCatalogHandler(catalogSvc),
		Invoice:       handler.NewInvoiceHandler(invoiceSvc, noteSvc),
		CreditNote:    handler.NewCreditNoteHandler(noteSvc),
		PurchaseOrder: handler.NewPurchaseOrderHandler(orderSvc),
		Stats:         handler.NewStatsHandler(statsSvc),
		Attachment:    handler.NewAttachmentHandler(attachSvc),
		Export:        handler.NewExportHandler(exportSvc),
		Health:        handler.NewHealthHandler(db),
	}

	// Setup router
	r := router.Setup(cfg, authSvc, h)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
