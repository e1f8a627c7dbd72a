// AngelaMos | 2026
// context.go

// Package tenant binds the current store to one request's context.
//
// The binding is a mutable cell installed once per request by the
// authentication middleware. A cell rather than a plain context value is what
// makes the set/clear/restore discipline work: the middleware can clear the
// binding in a deferred cleanup after the handler returns (or panics), so a
// reused context or worker never carries a stale tenant into the next
// request. Reads are fail-closed: no binding means an error, never a default
// store.
package tenant

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/somod-gif/cartwave-backend/internal/core"
)

type scopeKey struct{}

type scope struct {
	mu    sync.Mutex
	id    uuid.UUID
	bound bool
}

// WithScope installs a fresh, empty tenant cell. If the context already
// carries one (nested middleware invocation), it is reused so that the outer
// invocation's capture/restore sees the same cell.
func WithScope(ctx context.Context) context.Context {
	if scopeFrom(ctx) != nil {
		return ctx
	}
	return context.WithValue(ctx, scopeKey{}, &scope{})
}

func scopeFrom(ctx context.Context) *scope {
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}

// Set binds id as the current tenant, overwriting any prior binding.
func Set(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("tenant: id cannot be empty: %w", core.ErrInvalidInput)
	}

	s := scopeFrom(ctx)
	if s == nil {
		return fmt.Errorf(
			"tenant: context has no scope, WithScope was not called: %w",
			core.ErrInvalidInput,
		)
	}

	s.mu.Lock()
	s.id = id
	s.bound = true
	s.mu.Unlock()

	return nil
}

// ID returns the bound tenant. A read with nothing bound is a hard failure:
// every tenant-scoped query must refuse to run without an explicit store.
func ID(ctx context.Context) (uuid.UUID, error) {
	s := scopeFrom(ctx)
	if s == nil {
		return uuid.Nil, fmt.Errorf(
			"tenant: no tenant bound, request must carry a valid store claim: %w",
			core.ErrTenantAccessDenied,
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.bound {
		return uuid.Nil, fmt.Errorf(
			"tenant: no tenant bound, request must carry a valid store claim: %w",
			core.ErrTenantAccessDenied,
		)
	}

	return s.id, nil
}

// Clear unbinds the current tenant. Idempotent, safe on a scope-less context.
func Clear(ctx context.Context) {
	s := scopeFrom(ctx)
	if s == nil {
		return
	}

	s.mu.Lock()
	s.id = uuid.Nil
	s.bound = false
	s.mu.Unlock()
}

// IsSet reports whether a tenant is bound without failing. Used by the
// middleware to decide whether an existing binding must be captured before
// overwriting it.
func IsSet(ctx context.Context) bool {
	s := scopeFrom(ctx)
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}
