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

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogItemRepo creates a new PostgreSQL-backed CatalogItemRepository.
func NewCatalogItemRepo(db *sqlx.DB) port.CatalogItemRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) Create(ctx context.Context, item *domain.CatalogItem) error {
	item.ID = uuid.New()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `INSERT INTO catalog_items (id, tenant_id, kind, name, sku, description, unit_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.TenantID, item.Kind, item.Name, item.SKU, item.Description,
		item.UnitPrice, item.IsActive, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("catalogRepo.Create: %w", err)
	}
	return nil
}

func (r *catalogRepo) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := r.db.GetContext(ctx, &item,
		"SELECT * FROM catalog_items WHERE id = $1 AND tenant_id = $2", itemID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("catalogRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *catalogRepo) List(ctx context.Context, tenantID uuid.UUID, kind domain.CatalogKind, search string, offset, limit int) ([]domain.CatalogItem, int, error) {
	where := "tenant_id = $1"
	args := []interface{}{tenantID}
	if kind != "" {
		args = append(args, kind)
		where += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM catalog_items WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("catalogRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM catalog_items WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var items []domain.CatalogItem
	err = r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("catalogRepo.List: %w", err)
	}
	return items, total, nil
}

func (r *catalogRepo) Update(ctx context.Context, item *domain.CatalogItem) error {
	item.UpdatedAt = time.Now().UTC()

	query := `UPDATE catalog_items SET kind = $1, name = $2, sku = $3, description = $4, unit_price = $5, is_active = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		item.Kind, item.Name, item.SKU, item.Description, item.UnitPrice,
		item.IsActive, item.UpdatedAt, item.ID, item.TenantID)
	if err != nil {
		return fmt.Errorf("catalogRepo.Update: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *catalogRepo) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM catalog_items WHERE id = $1 AND tenant_id = $2", itemID, tenantID)
	if err != nil {
		return fmt.Errorf("catalogRepo.Delete: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
