package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *domain.Supplier) error {
	supplier.ID = uuid.New()
	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	query := `INSERT INTO suppliers (id, tenant_id, name, email, phone, address, contact_person, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		supplier.ID, supplier.TenantID, supplier.Name, supplier.Email, supplier.Phone,
		supplier.Address, supplier.ContactPerson, supplier.IsActive, supplier.CreatedAt, supplier.UpdatedAt)
	if err != nil {
		return fmt.Errorf("supplierRepo.Create: %w", err)
	}
	return nil
}

func (r *supplierRepo) GetByID(ctx context.Context, tenantID, supplierID uuid.UUID) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.GetContext(ctx, &supplier,
		"SELECT * FROM suppliers WHERE id = $1 AND tenant_id = $2", supplierID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByID: %w", err)
	}
	return &supplier, nil
}

func (r *supplierRepo) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Supplier, int, error) {
	where := "tenant_id = $1"
	args := []interface{}{tenantID}
	if search != "" {
		where += " AND (name ILIKE $2 OR email ILIKE $2 OR contact_person ILIKE $2)"
		args = append(args, "%"+search+"%")
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM suppliers WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM suppliers WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var suppliers []domain.Supplier
	err = r.db.SelectContext(ctx, &suppliers, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.List: %w", err)
	}
	return suppliers, total, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *domain.Supplier) error {
	supplier.UpdatedAt = time.Now().UTC()

	query := `UPDATE suppliers SET name = $1, email = $2, phone = $3, address = $4, contact_person = $5, is_active = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		supplier.Name, supplier.Email, supplier.Phone, supplier.Address, supplier.ContactPerson,
		supplier.IsActive, supplier.UpdatedAt, supplier.ID, supplier.TenantID)
	if err != nil {
		return fmt.Errorf("supplierRepo.Update: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM suppliers WHERE id = $1 AND tenant_id = $2", supplierID, tenantID)
	if err != nil {
		return fmt.Errorf("supplierRepo.Delete: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
