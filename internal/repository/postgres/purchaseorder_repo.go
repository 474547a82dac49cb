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

type purchaseOrderRepo struct {
	db *sqlx.DB
}

// NewPurchaseOrderRepo creates a new PostgreSQL-backed PurchaseOrderRepository.
func NewPurchaseOrderRepo(db *sqlx.DB) port.PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	order.ID = uuid.New()
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO purchase_orders (id, tenant_id, supplier_id, order_number, order_date,
		status, notes, total_amount, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = tx.ExecContext(ctx, query,
		order.ID, order.TenantID, order.SupplierID, order.OrderNumber, order.OrderDate,
		order.Status, order.Notes, order.TotalAmount, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateDocumentNo
		}
		return fmt.Errorf("purchaseOrderRepo.Create: %w", err)
	}

	insertLine := `INSERT INTO purchase_order_lines (id, purchase_order_id, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range order.Lines {
		line := &order.Lines[i]
		line.ID = uuid.New()
		line.PurchaseOrderID = order.ID
		if _, err := tx.ExecContext(ctx, insertLine,
			line.ID, line.PurchaseOrderID, line.Description, line.Quantity, line.UnitPrice); err != nil {
			return fmt.Errorf("purchaseOrderRepo.Create line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create commit: %w", err)
	}
	return nil
}

func (r *purchaseOrderRepo) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.db.GetContext(ctx, &order, `
		SELECT o.*, s.name AS supplier_name
		FROM purchase_orders o JOIN suppliers s ON s.id = o.supplier_id
		WHERE o.id = $1 AND o.tenant_id = $2`, orderID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("purchaseOrderRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &order.Lines,
		"SELECT * FROM purchase_order_lines WHERE purchase_order_id = $1 ORDER BY id", orderID)
	if err != nil {
		return nil, fmt.Errorf("purchaseOrderRepo.GetByID lines: %w", err)
	}
	return &order, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context, tenantID uuid.UUID, supplierID *uuid.UUID, status domain.PurchaseOrderStatus, offset, limit int) ([]domain.PurchaseOrder, int, error) {
	where := "o.tenant_id = $1"
	args := []interface{}{tenantID}
	if supplierID != nil {
		args = append(args, *supplierID)
		where += fmt.Sprintf(" AND o.supplier_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND o.status = $%d", len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM purchase_orders o WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("purchaseOrderRepo.List count: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT o.*, s.name AS supplier_name
		FROM purchase_orders o JOIN suppliers s ON s.id = o.supplier_id
		WHERE %s ORDER BY o.order_date DESC, o.created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var orders []domain.PurchaseOrder
	err = r.db.SelectContext(ctx, &orders, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("purchaseOrderRepo.List: %w", err)
	}
	return orders, total, nil
}

func (r *purchaseOrderRepo) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status domain.PurchaseOrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE purchase_orders SET status = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4",
		status, time.Now().UTC(), orderID, tenantID)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.UpdateStatus: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LinkInvoice records the invoice created from a received order and marks
// the order converted. Refuses orders that already carry an invoice.
func (r *purchaseOrderRepo) LinkInvoice(ctx context.Context, tenantID, orderID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE purchase_orders SET invoice_id = $1, status = 'converted', updated_at = $2
		WHERE id = $3 AND tenant_id = $4 AND invoice_id IS NULL`,
		invoiceID, time.Now().UTC(), orderID, tenantID)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.LinkInvoice: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrOrderAlreadyConverted
	}
	return nil
}

func (r *purchaseOrderRepo) NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	var seq int
	err := r.db.GetContext(ctx, &seq, `
		SELECT COALESCE(MAX(CAST(SUBSTRING(order_number FROM '[0-9]+$') AS INT)), 0) + 1
		FROM purchase_orders WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return "", fmt.Errorf("purchaseOrderRepo.NextNumber: %w", err)
	}
	return fmt.Sprintf("LPO-%05d", seq), nil
}
