// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somod-gif/cartwave-backend/internal/config"
	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/tenant"
)

type fakeVerifier struct {
	tokens map[string]*Claims
}

func (f *fakeVerifier) ExtractClaims(token string) (*Claims, error) {
	if claims, ok := f.tokens[token]; ok {
		return claims, nil
	}
	return nil, fmt.Errorf("extract claims: %w", core.ErrUnauthorized)
}

type fakeUsers struct {
	principals map[string]*Principal
}

func (f *fakeUsers) LoadByUsername(
	_ context.Context,
	username string,
) (*Principal, error) {
	if p, ok := f.principals[username]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("load principal: %w", core.ErrNotFound)
}

type fakeStores struct {
	ids []uuid.UUID
	err error
}

func (f *fakeStores) FindAllIDs(_ context.Context) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

type authFixture struct {
	userID  uuid.UUID
	storeID uuid.UUID
	claims  *Claims
	verify  *fakeVerifier
	users   *fakeUsers
	stores  *fakeStores
}

func newAuthFixture() *authFixture {
	userID := uuid.New()
	storeID := uuid.New()

	claims := &Claims{
		UserID:    userID,
		Email:     "owner@example.com",
		Role:      "BUSINESS_OWNER",
		StoreID:   storeID,
		TokenType: TokenTypeAccess,
	}

	return &authFixture{
		userID:  userID,
		storeID: storeID,
		claims:  claims,
		verify:  &fakeVerifier{tokens: map[string]*Claims{"good": claims}},
		users: &fakeUsers{principals: map[string]*Principal{
			"owner@example.com": {
				ID:    userID,
				Email: "owner@example.com",
				Role:  "BUSINESS_OWNER",
			},
		}},
		stores: &fakeStores{ids: []uuid.UUID{storeID}},
	}
}

func (f *authFixture) middleware(cfg config.TenantConfig) func(http.Handler) http.Handler {
	return TenantAuthenticator(f.verify, f.users, f.stores, cfg)
}

func doRequest(
	t *testing.T,
	mw func(http.Handler) http.Handler,
	token string,
	inspect func(r *http.Request),
) context.Context {
	t.Helper()

	var captured context.Context
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context()
		if inspect != nil {
			inspect(r)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, captured)
	return captured
}

func TestAnonymousWithoutToken(t *testing.T) {
	f := newAuthFixture()

	ctx := doRequest(t, f.middleware(config.TenantConfig{}), "",
		func(r *http.Request) {
			assert.Nil(t, GetPrincipal(r.Context()))
			assert.False(t, tenant.IsSet(r.Context()))
		})

	assert.False(t, tenant.IsSet(ctx))
}

func TestInvalidTokenDegradesToAnonymous(t *testing.T) {
	f := newAuthFixture()

	doRequest(t, f.middleware(config.TenantConfig{}), "forged",
		func(r *http.Request) {
			assert.Nil(t, GetPrincipal(r.Context()))
			assert.False(t, tenant.IsSet(r.Context()))
		})
}

func TestBindsTenantAndPrincipal(t *testing.T) {
	f := newAuthFixture()

	ctx := doRequest(t, f.middleware(config.TenantConfig{}), "good",
		func(r *http.Request) {
			storeID, err := tenant.ID(r.Context())
			require.NoError(t, err)
			assert.Equal(t, f.storeID, storeID)

			principal := GetPrincipal(r.Context())
			require.NotNil(t, principal)
			assert.Equal(t, f.userID, principal.ID)
			assert.Equal(t, "BUSINESS_OWNER", principal.Role)
			assert.True(t, IsAuthenticated(r.Context()))
		})

	// Cleanup ran after the handler; nothing stays bound.
	assert.False(t, tenant.IsSet(ctx))
}

func TestRefreshTokenDoesNotAuthenticate(t *testing.T) {
	f := newAuthFixture()
	f.claims.TokenType = TokenTypeRefresh

	doRequest(t, f.middleware(config.TenantConfig{}), "good",
		func(r *http.Request) {
			assert.Nil(t, GetPrincipal(r.Context()))
		})
}

func TestSubjectMismatchDoesNotAuthenticate(t *testing.T) {
	f := newAuthFixture()
	f.users.principals["owner@example.com"].ID = uuid.New()

	doRequest(t, f.middleware(config.TenantConfig{}), "good",
		func(r *http.Request) {
			assert.Nil(t, GetPrincipal(r.Context()))
		})
}

func TestSuspendedAccountDoesNotAuthenticate(t *testing.T) {
	f := newAuthFixture()
	delete(f.users.principals, "owner@example.com")

	doRequest(t, f.middleware(config.TenantConfig{}), "good",
		func(r *http.Request) {
			assert.Nil(t, GetPrincipal(r.Context()))
			// The store claim still binds; tenant scoping does not depend
			// on the account lookup.
			assert.True(t, tenant.IsSet(r.Context()))
		})
}

func TestSingleStoreFallback(t *testing.T) {
	t.Run("binds the only store", func(t *testing.T) {
		f := newAuthFixture()
		f.claims.StoreID = uuid.Nil

		doRequest(t, f.middleware(config.TenantConfig{SingleStoreFallback: true}),
			"good", func(r *http.Request) {
				storeID, err := tenant.ID(r.Context())
				require.NoError(t, err)
				assert.Equal(t, f.storeID, storeID)
			})
	})

	t.Run("refuses with multiple stores", func(t *testing.T) {
		f := newAuthFixture()
		f.claims.StoreID = uuid.Nil
		f.stores.ids = []uuid.UUID{uuid.New(), uuid.New()}

		doRequest(t, f.middleware(config.TenantConfig{SingleStoreFallback: true}),
			"good", func(r *http.Request) {
				assert.False(t, tenant.IsSet(r.Context()))
			})
	})

	t.Run("refuses with no stores", func(t *testing.T) {
		f := newAuthFixture()
		f.claims.StoreID = uuid.Nil
		f.stores.ids = nil

		doRequest(t, f.middleware(config.TenantConfig{SingleStoreFallback: true}),
			"good", func(r *http.Request) {
				assert.False(t, tenant.IsSet(r.Context()))
			})
	})

	t.Run("disabled by config", func(t *testing.T) {
		f := newAuthFixture()
		f.claims.StoreID = uuid.Nil

		doRequest(t, f.middleware(config.TenantConfig{SingleStoreFallback: false}),
			"good", func(r *http.Request) {
				assert.False(t, tenant.IsSet(r.Context()))
			})
	})

	t.Run("lookup failure binds nothing", func(t *testing.T) {
		f := newAuthFixture()
		f.claims.StoreID = uuid.Nil
		f.stores.err = fmt.Errorf("connection refused")

		doRequest(t, f.middleware(config.TenantConfig{SingleStoreFallback: true}),
			"good", func(r *http.Request) {
				assert.False(t, tenant.IsSet(r.Context()))
			})
	})
}

func TestCleanupRunsAfterPanic(t *testing.T) {
	f := newAuthFixture()

	var captured context.Context
	handler := f.middleware(config.TenantConfig{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = r.Context()
			require.True(t, tenant.IsSet(r.Context()))
			panic("handler blew up")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")

	assert.Panics(t, func() {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})

	require.NotNil(t, captured)
	assert.False(t, tenant.IsSet(captured))
}

func TestNestedAuthenticatorRestoresOuterTenant(t *testing.T) {
	f := newAuthFixture()

	innerStoreID := uuid.New()
	f.verify.tokens["inner"] = &Claims{
		UserID:    uuid.New(),
		Email:     "staff@example.com",
		Role:      "STAFF",
		StoreID:   innerStoreID,
		TokenType: TokenTypeAccess,
	}

	mw := f.middleware(config.TenantConfig{})

	inner := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, err := tenant.ID(r.Context())
		require.NoError(t, err)
		assert.Equal(t, innerStoreID, storeID)
	}))

	outer := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, err := tenant.ID(r.Context())
		require.NoError(t, err)
		assert.Equal(t, f.storeID, storeID)

		innerReq := r.Clone(r.Context())
		innerReq.Header.Set("Authorization", "Bearer inner")
		inner.ServeHTTP(httptest.NewRecorder(), innerReq)

		// The nested invocation cleared its own binding and restored ours.
		restored, err := tenant.ID(r.Context())
		require.NoError(t, err)
		assert.Equal(t, f.storeID, restored)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	outer.ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequireAuthenticated(t *testing.T) {
	handler := RequireAuthenticated(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	t.Run("rejects anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("passes authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(
			req.Context(),
			principalKey,
			&Principal{ID: uuid.New(), Role: "CUSTOMER"},
		)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole("SUPER_ADMIN")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	withRole := func(role string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(
			req.Context(),
			principalKey,
			&Principal{ID: uuid.New(), Role: role},
		)
		return req.WithContext(ctx)
	}

	t.Run("rejects anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects wrong role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withRole("CUSTOMER"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("passes matching role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withRole("SUPER_ADMIN"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"case insensitive scheme", "bearer abc", "abc"},
		{"wrong scheme", "Basic abc", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, ExtractToken(req))
		})
	}
}
