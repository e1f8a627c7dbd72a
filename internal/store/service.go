// AngelaMos | 2026
// service.go

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/subscription"
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

// Create provisions the store together with its initial FREE subscription in
// one transaction, so a store never exists without a resolvable plan.
func (s *Service) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	req CreateStoreRequest,
) (*Store, error) {
	newStore := &Store{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Country:     req.Country,
		Currency:    req.Currency,
		OwnerID:     ownerID,
		IsActive:    true,
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := NewRepository(tx).Create(ctx, newStore); err != nil {
			return err
		}

		if _, err := s.subs.ProvisionFree(ctx, tx, newStore.ID); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return newStore, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySlug(
	ctx context.Context,
	slug string,
) (*Store, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) FindByOwnerID(
	ctx context.Context,
	ownerID uuid.UUID,
) (*Store, error) {
	return s.repo.FindByOwnerID(ctx, ownerID)
}

// Update applies the requested changes. Assigning a custom domain is gated
// on the store's plan before anything is written.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	req UpdateStoreRequest,
) (*Store, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomDomain != nil && *req.CustomDomain != "" {
		allowed, featureErr := s.subs.IsFeatureEnabled(
			ctx,
			id,
			subscription.FeatureCustomDomain,
		)
		if featureErr != nil {
			return nil, featureErr
		}
		if !allowed {
			return nil, fmt.Errorf(
				"update store: current plan does not allow custom domains: %w",
				core.ErrForbidden,
			)
		}
		existing.CustomDomain = *req.CustomDomain
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Country != nil {
		existing.Country = *req.Country
	}
	if req.Currency != nil {
		existing.Currency = *req.Currency
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *Service) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.FindAllIDs(ctx)
}
