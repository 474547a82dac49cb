package domain

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// CatalogKind distinguishes products from services in the catalog and on
// invoice lines.
type CatalogKind string

const (
	KindProduct CatalogKind = "product"
	KindService CatalogKind = "service"
)

// InvoiceStatus represents the lifecycle of a sales invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// CreditNoteStatus represents the lifecycle of a credit note.
type CreditNoteStatus string

const (
	CreditNoteStatusOpen      CreditNoteStatus = "open"
	CreditNoteStatusProcessed CreditNoteStatus = "processed"
	CreditNoteStatusVoid      CreditNoteStatus = "void"
)

// PurchaseOrderStatus represents the lifecycle of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSent      PurchaseOrderStatus = "sent"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusConverted PurchaseOrderStatus = "converted"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// ReferenceType identifies which document an attachment belongs to.
type ReferenceType string

const (
	ReferenceInvoice       ReferenceType = "invoice"
	ReferenceCreditNote    ReferenceType = "credit_note"
	ReferencePurchaseOrder ReferenceType = "purchase_order"
)

// AllowedAttachmentTypes maps MIME content types to file extensions for
// uploaded attachments.
var AllowedAttachmentTypes = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
}
