// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/subscription"
	"github.com/somod-gif/cartwave-backend/internal/tenant"
)

type Service struct {
	db   *sqlx.DB
	repo Repository
	subs *subscription.Service
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	subs *subscription.Service,
) *Service {
	return &Service{db: db, repo: repo, subs: subs}
}

// Create inserts a product for the request's bound tenant. The plan-limit
// check runs against the live count inside a serializable transaction, so two
// concurrent creates cannot both slip under the ceiling.
func (s *Service) Create(
	ctx context.Context,
	req CreateProductRequest,
) (*Product, error) {
	storeID, err := tenant.ID(ctx)
	if err != nil {
		return nil, err
	}

	newProduct := &Product{
		ID:            uuid.New(),
		StoreID:       storeID,
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	err = core.InTxWithOptions(ctx, s.db, opts, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		current, countErr := txRepo.CountByStoreID(ctx, storeID)
		if countErr != nil {
			return countErr
		}

		if gateErr := s.subs.AssertCanCreateProducts(
			ctx, storeID, current, 1,
		); gateErr != nil {
			return gateErr
		}

		return txRepo.Create(ctx, newProduct)
	})
	if err != nil {
		return nil, err
	}

	return newProduct, nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*Product, error) {
	storeID, err := tenant.ID(ctx)
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, storeID, id)
}

func (s *Service) List(
	ctx context.Context,
	limit, offset int,
) ([]Product, int64, error) {
	storeID, err := tenant.ID(ctx)
	if err != nil {
		return nil, 0, err
	}

	products, err := s.repo.ListByStoreID(ctx, storeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByStoreID(ctx, storeID)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	req UpdateProductRequest,
) (*Product, error) {
	storeID, err := tenant.ID(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.SKU != nil {
		existing.SKU = *req.SKU
	}
	if req.PriceCents != nil {
		existing.PriceCents = *req.PriceCents
	}
	if req.StockQuantity != nil {
		existing.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	storeID, err := tenant.ID(ctx)
	if err != nil {
		return err
	}

	return s.repo.SoftDelete(ctx, storeID, id)
}
