// AngelaMos | 2026
// repository.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/somod-gif/cartwave-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, store *Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*Store, error)
	GetBySlug(ctx context.Context, slug string) (*Store, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Store, error)
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)
	Update(ctx context.Context, store *Store) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, store *Store) error {
	query := `
		INSERT INTO stores (id, name, slug, description, country, currency,
		                    owner_id, custom_domain, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, store, query,
		store.ID,
		store.Name,
		store.Slug,
		store.Description,
		store.Country,
		store.Currency,
		store.OwnerID,
		store.CustomDomain,
		store.IsActive,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create store: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create store: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*Store, error) {
	query := `
		SELECT id, name, slug, description, country, currency, owner_id,
		       custom_domain, is_active, created_at, updated_at, deleted_at
		FROM stores
		WHERE id = $1 AND deleted_at IS NULL`

	var store Store
	err := r.db.GetContext(ctx, &store, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get store: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}

	return &store, nil
}

func (r *repository) GetBySlug(
	ctx context.Context,
	slug string,
) (*Store, error) {
	query := `
		SELECT id, name, slug, description, country, currency, owner_id,
		       custom_domain, is_active, created_at, updated_at, deleted_at
		FROM stores
		WHERE slug = $1 AND deleted_at IS NULL`

	var store Store
	err := r.db.GetContext(ctx, &store, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get store by slug: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store by slug: %w", err)
	}

	return &store, nil
}

func (r *repository) FindByOwnerID(
	ctx context.Context,
	ownerID uuid.UUID,
) (*Store, error) {
	query := `
		SELECT id, name, slug, description, country, currency, owner_id,
		       custom_domain, is_active, created_at, updated_at, deleted_at
		FROM stores
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
		LIMIT 1`

	var store Store
	err := r.db.GetContext(ctx, &store, query, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find store by owner: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find store by owner: %w", err)
	}

	return &store, nil
}

func (r *repository) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT id FROM stores WHERE deleted_at IS NULL`

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("list store ids: %w", err)
	}

	return ids, nil
}

func (r *repository) Update(ctx context.Context, store *Store) error {
	query := `
		UPDATE stores
		SET name = $2, description = $3, country = $4, currency = $5,
		    custom_domain = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &store.UpdatedAt, query,
		store.ID,
		store.Name,
		store.Description,
		store.Country,
		store.Currency,
		store.CustomDomain,
		store.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update store: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
