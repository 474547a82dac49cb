package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) Counts(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM customers WHERE tenant_id = $1 AND is_active) AS customer_count,
			(SELECT COUNT(*) FROM suppliers WHERE tenant_id = $1 AND is_active) AS supplier_count,
			(SELECT COUNT(*) FROM invoices WHERE tenant_id = $1 AND status != 'void') AS invoice_count,
			(SELECT COUNT(*) FROM credit_notes WHERE tenant_id = $1 AND status = 'open') AS open_credit_notes,
			(SELECT COALESCE(SUM(total_amount), 0) FROM invoices WHERE tenant_id = $1 AND status != 'void') AS total_invoiced,
			(SELECT COALESCE(SUM(total_amount - amount_paid), 0) FROM invoices WHERE tenant_id = $1 AND status NOT IN ('void', 'paid')) AS total_outstanding,
			(SELECT COALESCE(SUM(credit_amount), 0) FROM credit_notes WHERE tenant_id = $1 AND status != 'void') AS total_credited`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.Counts: %w", err)
	}
	return &stats, nil
}

func (r *statsRepo) MonthlyRevenue(ctx context.Context, tenantID uuid.UUID, months int) ([]domain.MonthlyTotal, error) {
	var totals []domain.MonthlyTotal
	err := r.db.SelectContext(ctx, &totals, `
		SELECT TO_CHAR(invoice_date, 'YYYY-MM') AS month, COALESCE(SUM(total_amount), 0) AS total
		FROM invoices
		WHERE tenant_id = $1 AND status != 'void'
			AND invoice_date >= DATE_TRUNC('month', NOW()) - ($2 - 1) * INTERVAL '1 month'
		GROUP BY 1 ORDER BY 1`, tenantID, months)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.MonthlyRevenue: %w", err)
	}
	return totals, nil
}

func (r *statsRepo) RecentInvoices(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices, `
		SELECT i.*, c.name AS customer_name
		FROM invoices i JOIN customers c ON c.id = i.customer_id
		WHERE i.tenant_id = $1 ORDER BY i.created_at DESC LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.RecentInvoices: %w", err)
	}
	return invoices, nil
}

func (r *statsRepo) RecentCreditNotes(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.CreditNote, error) {
	var notes []domain.CreditNote
	err := r.db.SelectContext(ctx, &notes, `
		SELECT n.*, c.name AS customer_name
		FROM credit_notes n JOIN customers c ON c.id = n.customer_id
		WHERE n.tenant_id = $1 ORDER BY n.created_at DESC LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.RecentCreditNotes: %w", err)
	}
	return notes, nil
}
