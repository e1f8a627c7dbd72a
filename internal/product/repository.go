// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/somod-gif/cartwave-backend/internal/core"
)

// Repository queries are tenant-filtered: every statement over products
// carries a store_id predicate so a row can never leak across stores.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Product, error)
	ListByStoreID(
		ctx context.Context,
		storeID uuid.UUID,
		limit, offset int,
	) ([]Product, error)
	CountByStoreID(ctx context.Context, storeID uuid.UUID) (int64, error)
	Update(ctx context.Context, product *Product) error
	SoftDelete(ctx context.Context, storeID, id uuid.UUID) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (id, store_id, name, description, sku,
		                      price_cents, stock_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, product, query,
		product.ID,
		product.StoreID,
		product.Name,
		product.Description,
		product.SKU,
		product.PriceCents,
		product.StockQuantity,
		product.IsActive,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	storeID, id uuid.UUID,
) (*Product, error) {
	query := `
		SELECT id, store_id, name, description, sku, price_cents,
		       stock_quantity, is_active, created_at, updated_at, deleted_at
		FROM products
		WHERE id = $1 AND store_id = $2 AND deleted_at IS NULL`

	var product Product
	err := r.db.GetContext(ctx, &product, query, id, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &product, nil
}

func (r *repository) ListByStoreID(
	ctx context.Context,
	storeID uuid.UUID,
	limit, offset int,
) ([]Product, error) {
	query := `
		SELECT id, store_id, name, description, sku, price_cents,
		       stock_quantity, is_active, created_at, updated_at, deleted_at
		FROM products
		WHERE store_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	products := []Product{}
	err := r.db.SelectContext(ctx, &products, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (r *repository) CountByStoreID(
	ctx context.Context,
	storeID uuid.UUID,
) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM products
		WHERE store_id = $1 AND deleted_at IS NULL`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, storeID); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *repository) Update(ctx context.Context, product *Product) error {
	query := `
		UPDATE products
		SET name = $3, description = $4, sku = $5, price_cents = $6,
		    stock_quantity = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1 AND store_id = $2 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &product.UpdatedAt, query,
		product.ID,
		product.StoreID,
		product.Name,
		product.Description,
		product.SKU,
		product.PriceCents,
		product.StockQuantity,
		product.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	storeID, id uuid.UUID,
) error {
	query := `
		UPDATE products
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND store_id = $2 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, storeID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}

	return nil
}
