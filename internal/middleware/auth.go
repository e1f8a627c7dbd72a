// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/somod-gif/cartwave-backend/internal/config"
	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/tenant"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated user attached to a request.
type Principal struct {
	ID          uuid.UUID
	Email       string
	Role        string
	Permissions []string
}

type UserLookup interface {
	LoadByUsername(ctx context.Context, username string) (*Principal, error)
}

type StoreLookup interface {
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)
}

// TenantAuthenticator runs once per request: it decodes the bearer token,
// binds the store claim as the current tenant, and attaches the
// authenticated principal. A missing or invalid token degrades the request
// to anonymous processing instead of aborting it; downstream role and tenant
// checks decide whether anonymous is acceptable.
//
// The deferred cleanup is the tenant-isolation guarantee. It runs on every
// exit path, including handler panics, so a pooled worker or reused context
// never leaks one request's tenant into the next.
func TenantAuthenticator(
	verifier TokenVerifier,
	users UserLookup,
	stores StoreLookup,
	cfg config.TenantConfig,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := tenant.WithScope(r.Context())
			r = r.WithContext(ctx)

			var previousTenant uuid.UUID
			hadPrevious := false

			defer func() {
				// Cleanup is unconditional and must never mask the
				// handler's outcome; a restore failure is only logged.
				tenant.Clear(ctx)
				if hadPrevious {
					if err := tenant.Set(ctx, previousTenant); err != nil {
						slog.Error("restore tenant context failed",
							"error", err,
							"tenant_id", previousTenant,
						)
					}
				}
			}()

			if token := ExtractToken(r); token != "" {
				claims, err := verifier.ExtractClaims(token)
				if err != nil {
					slog.Debug("token rejected, continuing as anonymous",
						"error", err,
					)
					claims = nil
				}

				if claims != nil {
					storeID := claims.StoreID
					if storeID == uuid.Nil && cfg.SingleStoreFallback {
						storeID = resolveSingleStore(ctx, stores)
					}

					if storeID != uuid.Nil {
						if tenant.IsSet(ctx) {
							previousTenant, _ = tenant.ID(ctx)
							hadPrevious = true
						}
						if err := tenant.Set(ctx, storeID); err != nil {
							slog.Error("bind tenant context failed",
								"error", err,
								"store_id", storeID,
							)
						}
					}

					if principal := authenticate(ctx, users, claims); principal != nil {
						ctx = context.WithValue(ctx, principalKey, principal)
						r = r.WithContext(ctx)
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolveSingleStore is a convenience for single-tenant deployments: a token
// without a store claim maps to the only store in the system. With more than
// one store the resolution is ambiguous and no tenant is bound.
func resolveSingleStore(ctx context.Context, stores StoreLookup) uuid.UUID {
	ids, err := stores.FindAllIDs(ctx)
	if err != nil {
		slog.Warn("single-store fallback lookup failed", "error", err)
		return uuid.Nil
	}

	if len(ids) != 1 {
		return uuid.Nil
	}

	return ids[0]
}

func authenticate(
	ctx context.Context,
	users UserLookup,
	claims *Claims,
) *Principal {
	if GetPrincipal(ctx) != nil {
		return nil
	}

	// Refresh tokens only buy a new token pair, never a business endpoint.
	if claims.TokenType != TokenTypeAccess {
		return nil
	}

	if claims.Email == "" {
		return nil
	}

	principal, err := users.LoadByUsername(ctx, claims.Email)
	if err != nil {
		slog.Debug("principal lookup failed, continuing as anonymous",
			"error", err,
		)
		return nil
	}

	// Bind the token subject to a live account so tokens minted for
	// since-deleted users stop working.
	if principal.ID != claims.UserID {
		slog.Warn("token subject does not match stored account",
			"token_user", claims.UserID,
			"account_user", principal.ID,
		)
		return nil
	}

	return principal
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetPrincipal(r.Context()) == nil {
			core.JSONError(w, core.UnauthorizedError(""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())
			if principal == nil {
				core.JSONError(w, core.UnauthorizedError(""))
				return
			}

			if _, ok := roleSet[principal.Role]; !ok {
				core.JSONError(w, core.ForbiddenError(""))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetPrincipal(ctx context.Context) *Principal {
	if principal, ok := ctx.Value(principalKey).(*Principal); ok {
		return principal
	}
	return nil
}

func GetUserID(ctx context.Context) uuid.UUID {
	if principal := GetPrincipal(ctx); principal != nil {
		return principal.ID
	}
	return uuid.Nil
}

func GetUserRole(ctx context.Context) string {
	if principal := GetPrincipal(ctx); principal != nil {
		return principal.Role
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetPrincipal(ctx) != nil
}
