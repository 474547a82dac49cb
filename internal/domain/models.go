package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant represents an isolated organizational tenant.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Customer represents a billing customer.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	TaxNumber string    `db:"tax_number" json:"tax_number"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Supplier represents a vendor that purchase orders are issued to.
type Supplier struct {
	ID            uuid.UUID `db:"id" json:"id"`
	TenantID      uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	Address       string    `db:"address" json:"address"`
	ContactPerson string    `db:"contact_person" json:"contact_person"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// CatalogItem is a sellable product or service in the tenant's catalog.
type CatalogItem struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	TenantID    uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Kind        CatalogKind     `db:"kind" json:"kind"`
	Name        string          `db:"name" json:"name"`
	SKU         string          `db:"sku" json:"sku"`
	Description string          `db:"description" json:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Invoice is a sales invoice issued to a customer. Detail loads carry the
// line collections split by kind, which is the shape the credit-note editor
// consumes.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	TenantID      uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	CustomerID    uuid.UUID       `db:"customer_id" json:"customer_id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   time.Time       `db:"invoice_date" json:"invoice_date"`
	DueDate       *time.Time      `db:"due_date" json:"due_date"`
	Status        InvoiceStatus   `db:"status" json:"status"`
	Notes         string          `db:"notes" json:"notes"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	AmountPaid    decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	CreatedBy     uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`

	CustomerName string `db:"customer_name" json:"customer_name,omitempty"`

	Products []InvoiceItemLine   `json:"products,omitempty"`
	Services []InvoiceItemLine   `json:"services,omitempty"`
	Credits  []InvoiceCreditLine `json:"credits,omitempty"`
}

// InvoiceItemLine is a product or service row on an invoice.
type InvoiceItemLine struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	InvoiceID      uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	CatalogItemID  *uuid.UUID      `db:"catalog_item_id" json:"catalog_item_id"`
	Kind           CatalogKind     `db:"kind" json:"kind"`
	Name           string          `db:"name" json:"name"`
	SKU            string          `db:"sku" json:"sku"`
	Note           string          `db:"note" json:"note"`
	AdditionalNote string          `db:"additional_note" json:"additional_note"`
	Quantity       decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice      decimal.Decimal `db:"unit_price" json:"price"`
}

// InvoiceCreditLine is an inline credit row on an invoice. Amount is a
// total, not a unit price.
type InvoiceCreditLine struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	InvoiceID uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	Title     string          `db:"title" json:"title"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Note      string          `db:"note" json:"note"`
}

// CreditNote reduces what a customer owes, either against specific invoice
// line items or as a flat amount on the customer account.
type CreditNote struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	TenantID         uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	CustomerID       uuid.UUID        `db:"customer_id" json:"customer_id"`
	InvoiceID        *uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	CreditNoteNumber string           `db:"credit_note_number" json:"credit_note_number"`
	CreditDate       time.Time        `db:"credit_date" json:"credit_date"`
	Description      string           `db:"description" json:"description"`
	CreditAmount     decimal.Decimal  `db:"credit_amount" json:"credit_amount"`
	Status           CreditNoteStatus `db:"status" json:"status"`
	ProcessedAt      *time.Time       `db:"processed_at" json:"processed_at"`
	CreatedBy        uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`

	CustomerName string `db:"customer_name" json:"customer_name,omitempty"`

	LineItems []CreditNoteLineItem `json:"line_items,omitempty"`
}

// CreditNoteLineItem is one credited invoice row persisted on a credit note.
// ItemID is the invoice-side line identifier kept as a string for round-trip
// matching against normalized invoice items.
type CreditNoteLineItem struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	CreditNoteID uuid.UUID       `db:"credit_note_id" json:"credit_note_id"`
	ItemID       string          `db:"item_id" json:"item_id"`
	ItemType     string          `db:"item_type" json:"item_type"`
	Quantity     decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// PurchaseOrder is a supplier-facing purchase document (LPO).
type PurchaseOrder struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	TenantID    uuid.UUID           `db:"tenant_id" json:"tenant_id"`
	SupplierID  uuid.UUID           `db:"supplier_id" json:"supplier_id"`
	OrderNumber string              `db:"order_number" json:"order_number"`
	OrderDate   time.Time           `db:"order_date" json:"order_date"`
	Status      PurchaseOrderStatus `db:"status" json:"status"`
	Notes       string              `db:"notes" json:"notes"`
	TotalAmount decimal.Decimal     `db:"total_amount" json:"total_amount"`
	InvoiceID   *uuid.UUID          `db:"invoice_id" json:"invoice_id"`
	CreatedBy   uuid.UUID           `db:"created_by" json:"created_by"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updated_at"`

	SupplierName string `db:"supplier_name" json:"supplier_name,omitempty"`

	Lines []PurchaseOrderLine `json:"lines,omitempty"`
}

// PurchaseOrderLine is one row on a purchase order.
type PurchaseOrderLine struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	PurchaseOrderID uuid.UUID       `db:"purchase_order_id" json:"purchase_order_id"`
	Description     string          `db:"description" json:"description"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice       decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// Attachment stores metadata about a file uploaded against an invoice or
// credit note.
type Attachment struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	TenantID      uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	ReferenceType ReferenceType `db:"reference_type" json:"reference_type"`
	ReferenceID   uuid.UUID     `db:"reference_id" json:"reference_id"`
	UploadedBy    uuid.UUID     `db:"uploaded_by" json:"uploaded_by"`
	FileName      string        `db:"file_name" json:"file_name"`
	OriginalName  string        `db:"original_name" json:"original_name"`
	FileSize      int64         `db:"file_size" json:"file_size"`
	ContentType   string        `db:"content_type" json:"content_type"`
	S3Bucket      string        `db:"s3_bucket" json:"s3_bucket"`
	S3Key         string        `db:"s3_key" json:"s3_key"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// DashboardStats aggregates the figures shown on the dashboard.
type DashboardStats struct {
	CustomerCount     int             `db:"customer_count" json:"customer_count"`
	SupplierCount     int             `db:"supplier_count" json:"supplier_count"`
	InvoiceCount      int             `db:"invoice_count" json:"invoice_count"`
	OpenCreditNotes   int             `db:"open_credit_notes" json:"open_credit_notes"`
	TotalInvoiced     decimal.Decimal `db:"total_invoiced" json:"total_invoiced"`
	TotalOutstanding  decimal.Decimal `db:"total_outstanding" json:"total_outstanding"`
	TotalCredited     decimal.Decimal `db:"total_credited" json:"total_credited"`
	MonthlyRevenue    []MonthlyTotal  `json:"monthly_revenue"`
	RecentInvoices    []Invoice       `json:"recent_invoices"`
	RecentCreditNotes []CreditNote    `json:"recent_credit_notes"`
}

// MonthlyTotal is one month's invoiced total for the revenue chart.
type MonthlyTotal struct {
	Month string          `db:"month" json:"month"`
	Total decimal.Decimal `db:"total" json:"total"`
}
