package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/infrastructure/auth"
)

// recordedRequest is what the fake API saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]any
}

// fakeAPI answers every request with status and body and records it.
func fakeAPI(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()

	seen := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Method = r.Method
		seen.Path = r.URL.Path
		seen.Query = r.URL.RawQuery
		seen.Header = r.Header.Clone()

		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &seen.Body); err != nil {
				t.Errorf("request body is not JSON: %s", raw)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, seen
}

func runCLI(t *testing.T, opts *options, args ...string) (string, error) {
	t.Helper()

	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}

	var out bytes.Buffer
	cmd := newRootCmd(opts)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

const paymentBody = `{"id":"txn-1","kind":"pay","symbol":"GOLD","entries":[` +
	`{"id":"e1","account_id":"a","direction":"debit","amount":"2.50","balance_after":"7.50"},` +
	`{"id":"e2","account_id":"b","direction":"credit","amount":"2.50","balance_after":"2.50"}]}`

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}); err != nil {
		t.Fatalf("printJSON failed: %v", err)
	}

	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}
}

func TestPayCmd(t *testing.T) {
	srv, seen := fakeAPI(t, http.StatusCreated, paymentBody)

	out, err := runCLI(t, &options{URL: srv.URL, Tenant: "guild-1", Token: "tok"},
		"pay", "gold", "bob", "2.5", "--from", "alice", "--memo", "lunch")
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}

	if seen.Method != http.MethodPost || seen.Path != "/api/v1/tenants/guild-1/assets/gold/pay" {
		t.Fatalf("unexpected request %s %s", seen.Method, seen.Path)
	}
	if seen.Body["from"] != "alice" || seen.Body["to"] != "bob" || seen.Body["amount"] != "2.5" || seen.Body["memo"] != "lunch" {
		t.Fatalf("unexpected body: %v", seen.Body)
	}
	if seen.Header.Get("Authorization") != "Bearer tok" {
		t.Fatalf("expected bearer token, got %q", seen.Header.Get("Authorization"))
	}
	if !strings.HasPrefix(seen.Header.Get("Idempotency-Key"), "cli-") {
		t.Fatalf("expected idempotency key, got %q", seen.Header.Get("Idempotency-Key"))
	}
	if strings.TrimSpace(out) != "Paid 2.50 GOLD to bob (txn-1)" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPayCmdRejectsBadAmount(t *testing.T) {
	srv, seen := fakeAPI(t, http.StatusCreated, paymentBody)

	_, err := runCLI(t, &options{URL: srv.URL, Tenant: "guild-1"}, "pay", "GOLD", "bob", "lots")
	if err == nil || !strings.Contains(err.Error(), "invalid amount") {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if seen.Method != "" {
		t.Fatalf("no request should have been sent")
	}
}

func TestCmdSurfacesAPIError(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusUnprocessableEntity, `{"error":"insufficient_balance","message":"have 1, need 5"}`)

	_, err := runCLI(t, &options{URL: srv.URL, Tenant: "guild-1"}, "give", "GOLD", "bob", "5")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "insufficient_balance: have 1, need 5 (HTTP 422)" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCmdRequiresTenant(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusOK, `[]`)

	if _, err := runCLI(t, &options{URL: srv.URL}, "list"); err == nil || !strings.Contains(err.Error(), "tenant") {
		t.Fatalf("expected tenant error, got %v", err)
	}
}

func TestBalCmd(t *testing.T) {
	srv, seen := fakeAPI(t, http.StatusOK, `{"symbol":"GOLD","name":"Gold","balance":"19.99"}`)

	out, err := runCLI(t, &options{URL: srv.URL, Tenant: "guild-1"}, "bal", "alice", "GOLD")
	if err != nil {
		t.Fatalf("bal failed: %v", err)
	}
	if seen.Path != "/api/v1/tenants/guild-1/holders/alice/balances/GOLD" {
		t.Fatalf("unexpected path %s", seen.Path)
	}
	if strings.TrimSpace(out) != "alice has 19.99 GOLD" {
		t.Fatalf("unexpected output: %q", out)
	}

	srv, seen = fakeAPI(t, http.StatusOK, `[{"symbol":"GOLD","name":"Gold","balance":"19.99"},{"symbol":"GEM","name":"Gem","balance":"3"}]`)
	out, err = runCLI(t, &options{URL: srv.URL, Tenant: "guild-1"}, "bal", "alice")
	if err != nil {
		t.Fatalf("bal failed: %v", err)
	}
	if seen.Path != "/api/v1/tenants/guild-1/holders/alice/balances" {
		t.Fatalf("unexpected path %s", seen.Path)
	}
	if !strings.Contains(out, "GOLD") || !strings.Contains(out, "GEM") || !strings.Contains(out, "19.99") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestHistoryCmdJSON(t *testing.T) {
	srv, seen := fakeAPI(t, http.StatusOK, `[{"transaction_id":"txn-1","kind":"give","symbol":"GOLD","direction":"credit","amount":"5.00","balance_after":"5.00","created_at":"2024-05-01T00:00:00Z"}]`)

	out, err := runCLI(t, &options{URL: srv.URL, Tenant: "guild-1"}, "history", "alice", "--limit", "5", "--json")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if seen.Query != "limit=5" {
		t.Fatalf("unexpected query %q", seen.Query)
	}

	var entries []dto.HistoryEntryResponse
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("expected JSON output: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].TransactionID != "txn-1" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestAuditCmd(t *testing.T) {
	srv, seen := fakeAPI(t, http.StatusOK, `{"clean":false,"tenant":"guild-1","accounts_checked":3,"transactions_checked":2,`+
		`"drifts":[{"account_id":"acc-1"}],"repaired":true}`)

	out, err := runCLI(t, &options{URL: srv.URL, Tenant: "guild-1"}, "audit", "--confirm")
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if seen.Method != http.MethodPost || seen.Query != "confirm=true" {
		t.Fatalf("unexpected request %s ?%s", seen.Method, seen.Query)
	}
	if !strings.Contains(out, "Drifted accounts: 1") || !strings.Contains(out, "Balances repaired") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDeleteCmd(t *testing.T) {
	srv, seen := fakeAPI(t, http.StatusNoContent, "")

	out, err := runCLI(t, &options{URL: srv.URL, Tenant: "guild-1"}, "delete", "GOLD")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if seen.Method != http.MethodDelete || seen.Path != "/api/v1/tenants/guild-1/assets/GOLD" {
		t.Fatalf("unexpected request %s %s", seen.Method, seen.Path)
	}
	if strings.TrimSpace(out) != "Deleted GOLD" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTokenCmd(t *testing.T) {
	out, err := runCLI(t, &options{Tenant: "guild-1"}, "token", "--secret", "s3cret", "--user", "alice", "--role", "admin")
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	claims, err := auth.NewJWTManager("s3cret", time.Hour).Verify(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("minted token does not verify: %v", err)
	}
	if claims.GuildID != "guild-1" || claims.UserID != "alice" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := runCLI(t, &options{Tenant: "guild-1"}, "token", "--secret", "s3cret", "--user", "alice", "--role", "owner"); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
}

func TestCreateCmdDefaultsToTwoDecimals(t *testing.T) {
	srv, seen := fakeAPI(t, http.StatusCreated, `{"id":"a1","symbol":"GOLD","name":"Gold","decimals":2}`)

	out, err := runCLI(t, &options{URL: srv.URL, Tenant: "guild-1"}, "create", "GOLD", "Gold", "--supply", "1000")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if seen.Body["decimals"] != float64(2) {
		t.Fatalf("expected decimals 2 by default, got %v", seen.Body["decimals"])
	}
	if !strings.Contains(out, "1000.00 in the treasury") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestWriteCmdReusesIdempotencyKey(t *testing.T) {
	srv, seen := fakeAPI(t, http.StatusCreated, paymentBody)

	for i := 0; i < 2; i++ {
		if _, err := runCLI(t, &options{URL: srv.URL, Tenant: "guild-1"},
			"give", "GOLD", "bob", "2.5", "--idempotency-key", "reward-42"); err != nil {
			t.Fatalf("give failed: %v", err)
		}
		if got := seen.Header.Get("Idempotency-Key"); got != "reward-42" {
			t.Fatalf("expected the given key, got %q", got)
		}
	}
}
