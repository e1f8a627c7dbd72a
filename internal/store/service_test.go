// AngelaMos | 2026
// service_test.go

package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/subscription"
)

type fakeRepo struct {
	stores map[uuid.UUID]*Store
}

func (f *fakeRepo) Create(_ context.Context, s *Store) error {
	f.stores[s.ID] = s
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Store, error) {
	if s, ok := f.stores[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, fmt.Errorf("get store: %w", core.ErrNotFound)
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*Store, error) {
	for _, s := range f.stores {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, fmt.Errorf("get store by slug: %w", core.ErrNotFound)
}

func (f *fakeRepo) FindByOwnerID(
	_ context.Context,
	ownerID uuid.UUID,
) (*Store, error) {
	for _, s := range f.stores {
		if s.OwnerID == ownerID {
			return s, nil
		}
	}
	return nil, fmt.Errorf("find store by owner: %w", core.ErrNotFound)
}

func (f *fakeRepo) FindAllIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(f.stores))
	for id := range f.stores {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeRepo) Update(_ context.Context, s *Store) error {
	if _, ok := f.stores[s.ID]; !ok {
		return fmt.Errorf("update store: %w", core.ErrNotFound)
	}
	copied := *s
	f.stores[s.ID] = &copied
	return nil
}

type fakeSubRepo struct {
	plans []subscription.SubscriptionPlan
	subs  map[uuid.UUID]*subscription.Subscription
}

func (f *fakeSubRepo) ListPlans(
	_ context.Context,
) ([]subscription.SubscriptionPlan, error) {
	return f.plans, nil
}

func (f *fakeSubRepo) GetPlanByName(
	_ context.Context,
	name string,
) (*subscription.SubscriptionPlan, error) {
	for i := range f.plans {
		if f.plans[i].Name == name {
			return &f.plans[i], nil
		}
	}
	return nil, fmt.Errorf("get plan: %w", core.ErrNotFound)
}

func (f *fakeSubRepo) FindByStoreID(
	_ context.Context,
	storeID uuid.UUID,
) (*subscription.Subscription, error) {
	if sub, ok := f.subs[storeID]; ok {
		return sub, nil
	}
	return nil, fmt.Errorf("find subscription: %w", core.ErrNotFound)
}

func (f *fakeSubRepo) Create(
	_ context.Context,
	sub *subscription.Subscription,
) error {
	f.subs[sub.StoreID] = sub
	return nil
}

func newGateFixture(t *testing.T, planName string) (*Service, *Store) {
	t.Helper()

	storeID := uuid.New()
	existing := &Store{
		ID:       storeID,
		Name:     "Acme Goods",
		Slug:     "acme-goods",
		OwnerID:  uuid.New(),
		IsActive: true,
	}

	repo := &fakeRepo{stores: map[uuid.UUID]*Store{storeID: existing}}

	subRepo := &fakeSubRepo{
		plans: []subscription.SubscriptionPlan{
			{Name: "FREE", ProductLimit: 20, StaffLimit: 1},
			{
				Name:                "PRO",
				ProductLimit:        1000,
				StaffLimit:          10,
				PaymentsEnabled:     true,
				CustomDomainEnabled: true,
			},
		},
		subs: map[uuid.UUID]*subscription.Subscription{},
	}
	if planName != "" {
		subRepo.subs[storeID] = &subscription.Subscription{
			ID:       uuid.New(),
			StoreID:  storeID,
			PlanName: planName,
			Status:   subscription.StatusActive,
		}
	}

	registry, err := subscription.NewPlanRegistry(context.Background(), subRepo)
	require.NoError(t, err)
	subSvc := subscription.NewService(subRepo, registry)

	return NewService(nil, repo, subSvc), existing
}

func TestUpdateCustomDomainRequiresPlan(t *testing.T) {
	svc, existing := newGateFixture(t, "")

	domain := "shop.acme.example"
	_, err := svc.Update(context.Background(), existing.ID, UpdateStoreRequest{
		CustomDomain: &domain,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)

	// Nothing was written.
	unchanged, err := svc.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Empty(t, unchanged.CustomDomain)
}

func TestUpdateCustomDomainAllowedOnPro(t *testing.T) {
	svc, existing := newGateFixture(t, "PRO")

	domain := "shop.acme.example"
	updated, err := svc.Update(
		context.Background(),
		existing.ID,
		UpdateStoreRequest{CustomDomain: &domain},
	)
	require.NoError(t, err)
	assert.Equal(t, domain, updated.CustomDomain)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc, existing := newGateFixture(t, "PRO")

	name := "Acme Goods International"
	updated, err := svc.Update(
		context.Background(),
		existing.ID,
		UpdateStoreRequest{Name: &name},
	)
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, existing.Slug, updated.Slug)
	assert.Empty(t, updated.CustomDomain)
}

func TestUpdateUnknownStore(t *testing.T) {
	svc, _ := newGateFixture(t, "PRO")

	name := "Ghost"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateStoreRequest{
		Name: &name,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
