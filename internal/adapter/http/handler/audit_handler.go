package handler

import (
	"context"
	"net/http"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	Audit(ctx context.Context, tenant string, confirm bool) (*domain.AuditReport, error)
}

// AuditHandler runs reconciliation.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// Run audits the tenant. With confirm=true drifted balances are repaired.
func (h *AuditHandler) Run(w http.ResponseWriter, r *http.Request) {
	report, err := h.auditUC.Audit(r.Context(), tenantParam(r), parseBoolQuery(r, "confirm"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditFromDomain(report))
}
