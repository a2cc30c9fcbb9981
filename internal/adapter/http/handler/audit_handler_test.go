package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/vcledger/internal/domain"
)

type auditServiceStub struct {
	auditFn func(ctx context.Context, tenant string, confirm bool) (*domain.AuditReport, error)
}

func (s *auditServiceStub) Audit(ctx context.Context, tenant string, confirm bool) (*domain.AuditReport, error) {
	return s.auditFn(ctx, tenant, confirm)
}

func TestAuditHandler_Run(t *testing.T) {
	var confirmed bool
	handler := NewAuditHandler(&auditServiceStub{
		auditFn: func(ctx context.Context, tenant string, confirm bool) (*domain.AuditReport, error) {
			confirmed = confirm
			return &domain.AuditReport{Tenant: tenant, AccountsChecked: 4}, nil
		},
	})

	req := setChiURLParams(httptest.NewRequest(http.MethodPost, "/audit?confirm=true", nil), "tenant", "guild-1")
	rec := httptest.NewRecorder()

	handler.Run(rec, req)

	if rec.Code != http.StatusOK || !confirmed {
		t.Fatalf("expected confirmed audit, got %d confirm=%v", rec.Code, confirmed)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["clean"] != true || resp["tenant"] != "guild-1" {
		t.Fatalf("unexpected response: %v", resp)
	}
}
