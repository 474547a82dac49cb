package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTenantInactive     = errors.New("tenant is inactive")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists for this tenant")

	// Credit-note reconciliation errors.
	ErrLineItemNoID      = errors.New("invoice line item is missing its identifier")
	ErrNoLineItems       = errors.New("no valid line items remained after sanitization")
	ErrInvalidLineItem   = errors.New("selected line items need a valid quantity and unit price")
	ErrNoInvoiceSelected = errors.New("no invoice selected for line-item credit")
	ErrNonPositiveAmount = errors.New("credit amount must be greater than zero")
	ErrStaleInvoiceFetch = errors.New("invoice detail superseded by a newer selection")

	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrCreditNoteProcessed    = errors.New("credit note has already been processed")
	ErrCreditNoteVoid         = errors.New("credit note is void")
	ErrDuplicateDocumentNo    = errors.New("document number already exists for this tenant")
	ErrCustomerInactive       = errors.New("customer is inactive")
	ErrOrderAlreadyConverted  = errors.New("purchase order has already been converted")
	ErrOrderNotReceived       = errors.New("purchase order must be received before conversion")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed           = errors.New("file upload to storage failed")
	ErrInvoiceHasCreditNotes  = errors.New("invoice has credit notes and cannot be voided")
	ErrCreditExceedsInvoice   = errors.New("credit amount exceeds invoice total")
)
