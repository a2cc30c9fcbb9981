package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{
			name:       "normalizes tenant path",
			method:     http.MethodGet,
			path:       "/api/v1/tenants/1234/assets/GOLD",
			statusCode: http.StatusTeapot,
		},
		{
			name:       "keeps non-matching path as-is",
			method:     http.MethodPost,
			path:       "/health",
			statusCode: http.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpRequestsTotal.Reset()
			httpRequestDuration.Reset()
			httpRequestsInFlight.Set(0)

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(tc.statusCode)
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()

			Metrics(next).ServeHTTP(rr, req)

			if !handlerCalled {
				t.Fatalf("next handler was not invoked")
			}

			if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			normalized := normalizePath(tc.path)
			counter := httpRequestsTotal.WithLabelValues(tc.method, normalized, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected counter to be 1, got %v", got)
			}
		})
	}
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	httpRequestsTotal.Reset()

	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/v1/tenants/{tenant}/holders/{holder}/balances", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/42/holders/alice/balances", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/tenants/{tenant}/holders/{holder}/balances", "200")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected route pattern label, got %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "asset path with suffix",
			input:    "/api/v1/tenants/42/assets/GOLD/give",
			expected: "/api/v1/tenants/{tenant}/assets/{symbol}/give",
		},
		{
			name:     "holder balance path",
			input:    "/api/v1/tenants/42/holders/alice/balances/GOLD",
			expected: "/api/v1/tenants/{tenant}/holders/{holder}/balances/{symbol}",
		},
		{
			name:     "holder history path",
			input:    "/api/v1/tenants/42/holders/alice/transactions",
			expected: "/api/v1/tenants/{tenant}/holders/{holder}/transactions",
		},
		{
			name:     "transaction reverse path",
			input:    "/api/v1/tenants/42/transactions/01HX/reverse",
			expected: "/api/v1/tenants/{tenant}/transactions/{id}/reverse",
		},
		{
			name:     "collection path",
			input:    "/api/v1/tenants/42/assets",
			expected: "/api/v1/tenants/{tenant}/assets",
		},
		{
			name:     "non-matching path",
			input:    "/health",
			expected: "/health",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePath(tc.input); got != tc.expected {
				t.Fatalf("normalizePath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
