// AngelaMos | 2026
// context_test.go

package tenant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somod-gif/cartwave-backend/internal/core"
)

func TestSetAndID(t *testing.T) {
	ctx := WithScope(context.Background())
	storeID := uuid.New()

	require.NoError(t, Set(ctx, storeID))

	got, err := ID(ctx)
	require.NoError(t, err)
	assert.Equal(t, storeID, got)
	assert.True(t, IsSet(ctx))
}

func TestIDFailsClosedWithoutBinding(t *testing.T) {
	ctx := WithScope(context.Background())

	_, err := ID(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTenantAccessDenied)
}

func TestIDFailsClosedWithoutScope(t *testing.T) {
	_, err := ID(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTenantAccessDenied)
}

func TestSetRejectsEmptyID(t *testing.T) {
	ctx := WithScope(context.Background())

	err := Set(ctx, uuid.Nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.False(t, IsSet(ctx))
}

func TestSetRequiresScope(t *testing.T) {
	err := Set(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestClearUnbinds(t *testing.T) {
	ctx := WithScope(context.Background())
	require.NoError(t, Set(ctx, uuid.New()))

	Clear(ctx)

	assert.False(t, IsSet(ctx))
	_, err := ID(ctx)
	assert.ErrorIs(t, err, core.ErrTenantAccessDenied)
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := WithScope(context.Background())

	Clear(ctx)
	Clear(ctx)
	assert.False(t, IsSet(ctx))

	// Safe on a context that never had a scope.
	Clear(context.Background())
}

func TestSetOverwritesPriorBinding(t *testing.T) {
	ctx := WithScope(context.Background())
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, Set(ctx, first))
	require.NoError(t, Set(ctx, second))

	got, err := ID(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestWithScopeReusesExistingCell(t *testing.T) {
	outer := WithScope(context.Background())
	storeID := uuid.New()
	require.NoError(t, Set(outer, storeID))

	inner := WithScope(outer)
	assert.Equal(t, outer, inner)

	got, err := ID(inner)
	require.NoError(t, err)
	assert.Equal(t, storeID, got)

	// Clearing through the nested reference clears the shared cell.
	Clear(inner)
	assert.False(t, IsSet(outer))
}

func TestDeferredClearRunsOnPanic(t *testing.T) {
	ctx := WithScope(context.Background())

	func() {
		defer func() {
			_ = recover()
		}()
		defer Clear(ctx)

		require.NoError(t, Set(ctx, uuid.New()))
		panic("handler blew up")
	}()

	assert.False(t, IsSet(ctx))
	_, err := ID(ctx)
	assert.ErrorIs(t, err, core.ErrTenantAccessDenied)
}

func TestSequentialReuseDoesNotLeak(t *testing.T) {
	ctx := WithScope(context.Background())

	for range 3 {
		storeID := uuid.New()
		require.NoError(t, Set(ctx, storeID))

		got, err := ID(ctx)
		require.NoError(t, err)
		assert.Equal(t, storeID, got)

		Clear(ctx)
		assert.False(t, IsSet(ctx))
	}
}
