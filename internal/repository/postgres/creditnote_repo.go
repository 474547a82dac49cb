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

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

type creditNoteRepo struct {
	db *sqlx.DB
}

// NewCreditNoteRepo creates a new PostgreSQL-backed CreditNoteRepository.
func NewCreditNoteRepo(db *sqlx.DB) port.CreditNoteRepository {
	return &creditNoteRepo{db: db}
}

func (r *creditNoteRepo) Create(ctx context.Context, note *domain.CreditNote) error {
	note.ID = uuid.New()
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("creditNoteRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO credit_notes (id, tenant_id, customer_id, invoice_id, credit_note_number,
		credit_date, description, credit_amount, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = tx.ExecContext(ctx, query,
		note.ID, note.TenantID, note.CustomerID, note.InvoiceID, note.CreditNoteNumber,
		note.CreditDate, note.Description, note.CreditAmount, note.Status,
		note.CreatedBy, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateDocumentNo
		}
		return fmt.Errorf("creditNoteRepo.Create: %w", err)
	}

	if err := insertCreditNoteLines(ctx, tx, note.ID, note.LineItems); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("creditNoteRepo.Create commit: %w", err)
	}
	return nil
}

func insertCreditNoteLines(ctx context.Context, tx *sqlx.Tx, noteID uuid.UUID, items []domain.CreditNoteLineItem) error {
	query := `INSERT INTO credit_note_line_items (id, credit_note_id, item_id, item_type, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range items {
		item := &items[i]
		item.ID = uuid.New()
		item.CreditNoteID = noteID
		if _, err := tx.ExecContext(ctx, query,
			item.ID, item.CreditNoteID, item.ItemID, item.ItemType, item.Quantity, item.UnitPrice); err != nil {
			return fmt.Errorf("creditNoteRepo line item: %w", err)
		}
	}
	return nil
}

func (r *creditNoteRepo) GetByID(ctx context.Context, tenantID, noteID uuid.UUID) (*domain.CreditNote, error) {
	var note domain.CreditNote
	err := r.db.GetContext(ctx, &note, `
		SELECT n.*, c.name AS customer_name
		FROM credit_notes n JOIN customers c ON c.id = n.customer_id
		WHERE n.id = $1 AND n.tenant_id = $2`, noteID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("creditNoteRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &note.LineItems,
		"SELECT * FROM credit_note_line_items WHERE credit_note_id = $1 ORDER BY id", noteID)
	if err != nil {
		return nil, fmt.Errorf("creditNoteRepo.GetByID line items: %w", err)
	}
	return &note, nil
}

func (r *creditNoteRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.CreditNoteFilter, offset, limit int) ([]domain.CreditNote, int, error) {
	where := "n.tenant_id = $1"
	args := []interface{}{tenantID}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		where += fmt.Sprintf(" AND n.customer_id = $%d", len(args))
	}
	if filter.InvoiceID != nil {
		args = append(args, *filter.InvoiceID)
		where += fmt.Sprintf(" AND n.invoice_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND n.status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (n.credit_note_number ILIKE $%d OR c.name ILIKE $%d)", len(args), len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM credit_notes n JOIN customers c ON c.id = n.customer_id WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("creditNoteRepo.List count: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT n.*, c.name AS customer_name
		FROM credit_notes n JOIN customers c ON c.id = n.customer_id
		WHERE %s ORDER BY n.credit_date DESC, n.created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var notes []domain.CreditNote
	err = r.db.SelectContext(ctx, &notes, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("creditNoteRepo.List: %w", err)
	}
	return notes, total, nil
}

// Update rewrites the note and replaces its line items wholesale.
func (r *creditNoteRepo) Update(ctx context.Context, note *domain.CreditNote) error {
	note.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("creditNoteRepo.Update begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE credit_notes SET customer_id = $1, invoice_id = $2, credit_date = $3,
			description = $4, credit_amount = $5, updated_at = $6
		WHERE id = $7 AND tenant_id = $8 AND status = 'open'`,
		note.CustomerID, note.InvoiceID, note.CreditDate, note.Description,
		note.CreditAmount, note.UpdatedAt, note.ID, note.TenantID)
	if err != nil {
		return fmt.Errorf("creditNoteRepo.Update: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM credit_note_line_items WHERE credit_note_id = $1", note.ID); err != nil {
		return fmt.Errorf("creditNoteRepo.Update clear lines: %w", err)
	}
	if err := insertCreditNoteLines(ctx, tx, note.ID, note.LineItems); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("creditNoteRepo.Update commit: %w", err)
	}
	return nil
}

func (r *creditNoteRepo) MarkProcessed(ctx context.Context, tenantID, noteID uuid.UUID) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		UPDATE credit_notes SET status = 'processed', processed_at = $1, updated_at = $1
		WHERE id = $2 AND tenant_id = $3 AND status = 'open'`,
		now, noteID, tenantID)
	if err != nil {
		return fmt.Errorf("creditNoteRepo.MarkProcessed: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *creditNoteRepo) Delete(ctx context.Context, tenantID, noteID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM credit_notes WHERE id = $1 AND tenant_id = $2 AND status = 'open'",
		noteID, tenantID)
	if err != nil {
		return fmt.Errorf("creditNoteRepo.Delete: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *creditNoteRepo) NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	var seq int
	err := r.db.GetContext(ctx, &seq, `
		SELECT COALESCE(MAX(CAST(SUBSTRING(credit_note_number FROM '[0-9]+$') AS INT)), 0) + 1
		FROM credit_notes WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return "", fmt.Errorf("creditNoteRepo.NextNumber: %w", err)
	}
	return fmt.Sprintf("CN-%05d", seq), nil
}
