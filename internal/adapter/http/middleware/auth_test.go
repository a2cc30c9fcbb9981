package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/infrastructure/auth"
)

func newAuthRouter(t *testing.T, jwtManager *auth.JWTManager, seen **domain.Caller) http.Handler {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/tenants/{tenant}", func(r chi.Router) {
		r.Use(AuthMiddleware(jwtManager))
		r.Get("/member", func(w http.ResponseWriter, r *http.Request) {
			*seen, _ = CallerFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
		r.With(RequireAdmin).Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func mintToken(t *testing.T, jwtManager *auth.JWTManager, tenant string, role domain.Role) string {
	t.Helper()

	token, err := jwtManager.Generate(&domain.Caller{Tenant: tenant, UserID: "alice", Role: role})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	testCases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/tenants/guild-1/member", "", http.StatusUnauthorized},
		{"wrong scheme", "/tenants/guild-1/member", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "/tenants/guild-1/member", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"other guild", "/tenants/guild-2/member", "Bearer " + mintToken(t, jwtManager, "guild-1", domain.RoleMember), http.StatusForbidden},
		{"member ok", "/tenants/guild-1/member", "Bearer " + mintToken(t, jwtManager, "guild-1", domain.RoleMember), http.StatusOK},
		{"member on admin route", "/tenants/guild-1/admin", "Bearer " + mintToken(t, jwtManager, "guild-1", domain.RoleMember), http.StatusForbidden},
		{"admin on admin route", "/tenants/guild-1/admin", "Bearer " + mintToken(t, jwtManager, "guild-1", domain.RoleAdmin), http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var seen *domain.Caller
			router := newAuthRouter(t, jwtManager, &seen)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rr.Code, rr.Body.String())
			}
			if tc.name == "member ok" && (seen == nil || seen.UserID != "alice" || seen.Tenant != "guild-1") {
				t.Fatalf("expected caller in context, got %+v", seen)
			}
		})
	}
}

func TestRequireAdminWithoutCaller(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
