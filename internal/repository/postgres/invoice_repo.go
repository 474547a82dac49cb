package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO invoices (id, tenant_id, customer_id, invoice_number, invoice_date, due_date,
		status, notes, total_amount, amount_paid, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = tx.ExecContext(ctx, query,
		invoice.ID, invoice.TenantID, invoice.CustomerID, invoice.InvoiceNumber,
		invoice.InvoiceDate, invoice.DueDate, invoice.Status, invoice.Notes,
		invoice.TotalAmount, invoice.AmountPaid, invoice.CreatedBy,
		invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateDocumentNo
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	insertLine := `INSERT INTO invoice_lines (id, invoice_id, catalog_item_id, kind, name, sku, note, additional_note, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i := range invoice.Products {
		line := &invoice.Products[i]
		line.ID = uuid.New()
		line.InvoiceID = invoice.ID
		line.Kind = domain.KindProduct
		if _, err := tx.ExecContext(ctx, insertLine,
			line.ID, line.InvoiceID, line.CatalogItemID, line.Kind, line.Name,
			line.SKU, line.Note, line.AdditionalNote, line.Quantity, line.UnitPrice); err != nil {
			return fmt.Errorf("invoiceRepo.Create product line: %w", err)
		}
	}
	for i := range invoice.Services {
		line := &invoice.Services[i]
		line.ID = uuid.New()
		line.InvoiceID = invoice.ID
		line.Kind = domain.KindService
		if _, err := tx.ExecContext(ctx, insertLine,
			line.ID, line.InvoiceID, line.CatalogItemID, line.Kind, line.Name,
			line.SKU, line.Note, line.AdditionalNote, line.Quantity, line.UnitPrice); err != nil {
			return fmt.Errorf("invoiceRepo.Create service line: %w", err)
		}
	}

	insertCredit := `INSERT INTO invoice_credit_lines (id, invoice_id, title, amount, note)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range invoice.Credits {
		line := &invoice.Credits[i]
		line.ID = uuid.New()
		line.InvoiceID = invoice.ID
		if _, err := tx.ExecContext(ctx, insertCredit,
			line.ID, line.InvoiceID, line.Title, line.Amount, line.Note); err != nil {
			return fmt.Errorf("invoiceRepo.Create credit line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice, `
		SELECT i.*, c.name AS customer_name
		FROM invoices i JOIN customers c ON c.id = i.customer_id
		WHERE i.id = $1 AND i.tenant_id = $2`, invoiceID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &invoice, nil
}

// GetDetail loads the invoice with its line collections split by kind.
func (r *invoiceRepo) GetDetail(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := r.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	var lines []domain.InvoiceItemLine
	err = r.db.SelectContext(ctx, &lines,
		"SELECT * FROM invoice_lines WHERE invoice_id = $1 ORDER BY id", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetDetail lines: %w", err)
	}
	for _, line := range lines {
		if line.Kind == domain.KindService {
			invoice.Services = append(invoice.Services, line)
		} else {
			invoice.Products = append(invoice.Products, line)
		}
	}

	err = r.db.SelectContext(ctx, &invoice.Credits,
		"SELECT * FROM invoice_credit_lines WHERE invoice_id = $1 ORDER BY id", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetDetail credits: %w", err)
	}

	return invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	where := "i.tenant_id = $1"
	args := []interface{}{tenantID}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		where += fmt.Sprintf(" AND i.customer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND i.status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (i.invoice_number ILIKE $%d OR c.name ILIKE $%d)", len(args), len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices i JOIN customers c ON c.id = i.customer_id WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT i.*, c.name AS customer_name
		FROM invoices i JOIN customers c ON c.id = i.customer_id
		WHERE %s ORDER BY i.invoice_date DESC, i.created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4",
		status, time.Now().UTC(), invoiceID, tenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// ApplyCredit reduces the invoice's outstanding balance by amount and
// bumps the status to partial or paid accordingly.
func (r *invoiceRepo) ApplyCredit(ctx context.Context, tenantID, invoiceID uuid.UUID, amount decimal.Decimal) error {
	query := `UPDATE invoices SET
		amount_paid = amount_paid + $1,
		status = CASE WHEN amount_paid + $1 >= total_amount THEN 'paid' ELSE 'partial' END,
		updated_at = $2
		WHERE id = $3 AND tenant_id = $4 AND status NOT IN ('void')`

	result, err := r.db.ExecContext(ctx, query, amount, time.Now().UTC(), invoiceID, tenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.ApplyCredit: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) CountCreditNotes(ctx context.Context, tenantID, invoiceID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM credit_notes WHERE invoice_id = $1 AND tenant_id = $2 AND status != 'void'",
		invoiceID, tenantID)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.CountCreditNotes: %w", err)
	}
	return count, nil
}

func (r *invoiceRepo) NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	var seq int
	err := r.db.GetContext(ctx, &seq, `
		SELECT COALESCE(MAX(CAST(SUBSTRING(invoice_number FROM '[0-9]+$') AS INT)), 0) + 1
		FROM invoices WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return "", fmt.Errorf("invoiceRepo.NextNumber: %w", err)
	}
	return fmt.Sprintf("INV-%05d", seq), nil
}
