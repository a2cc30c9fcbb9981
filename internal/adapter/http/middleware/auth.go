package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// CallerContextKey is the context key for the authenticated caller
	CallerContextKey ContextKey = "caller"

	// TenantParam is the URL parameter carrying the guild id.
	TenantParam = "tenant"
)

// AuthMiddleware requires a Bearer token issued for the tenant in the URL.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, domain.ErrUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeAuthError(w, http.StatusUnauthorized, domain.ErrUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, err, "invalid or expired token")
				return
			}

			caller := claims.Caller()
			if tenant := chi.URLParam(r, TenantParam); tenant != "" && tenant != caller.Tenant {
				writeAuthError(w, http.StatusForbidden, domain.ErrTenantMismatch, "")
				return
			}

			ctx := context.WithValue(r.Context(), CallerContextKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers without server-management rights. It must
// run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, domain.ErrUnauthorized, "")
			return
		}

		if !caller.Role.CanAdminister() {
			writeAuthError(w, http.StatusForbidden, domain.ErrInsufficientRole, "")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CallerFromContext extracts the authenticated caller from context
func CallerFromContext(ctx context.Context) (*domain.Caller, bool) {
	caller, ok := ctx.Value(CallerContextKey).(*domain.Caller)
	return caller, ok
}

func writeAuthError(w http.ResponseWriter, status int, err error, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: err.Error(), Message: details})
}
