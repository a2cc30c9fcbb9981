package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/adapter/http/middleware"
	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Pay(ctx context.Context, input usecase.PayInput) (*usecase.PostedTransaction, error)
	Give(ctx context.Context, input usecase.GiveInput) (*usecase.PostedTransaction, error)
	Burn(ctx context.Context, input usecase.BurnInput) (*usecase.PostedTransaction, error)
	Reverse(ctx context.Context, input usecase.ReverseInput) (*usecase.PostedTransaction, error)
}

// TransactionReader loads a stored transaction with its asset.
type TransactionReader interface {
	GetTransaction(ctx context.Context, tenant, id string) (*domain.Transaction, *domain.Asset, error)
}

// TransferHandler handles coin movements.
type TransferHandler struct {
	transferUC TransferService
	reader     TransactionReader
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService, reader TransactionReader) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, reader: reader}
}

// Give issues coins from the treasury to a holder.
func (h *TransferHandler) Give(w http.ResponseWriter, r *http.Request) {
	var req dto.GiveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	txn, err := h.transferUC.Give(r.Context(), req.ToUseCaseInput(tenantParam(r), chi.URLParam(r, "symbol")))
	h.respond(w, r, txn, err)
}

// Pay moves coins between two holders. An authenticated caller always pays
// from their own account.
func (h *TransferHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req dto.PayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if caller, ok := middleware.CallerFromContext(r.Context()); ok {
		req.From = caller.UserID
	}

	txn, err := h.transferUC.Pay(r.Context(), req.ToUseCaseInput(tenantParam(r), chi.URLParam(r, "symbol")))
	h.respond(w, r, txn, err)
}

// Burn destroys coins held by a holder or by the treasury.
func (h *TransferHandler) Burn(w http.ResponseWriter, r *http.Request) {
	var req dto.BurnRequest
	if !decodeBody(w, r, &req) {
		return
	}

	txn, err := h.transferUC.Burn(r.Context(), req.ToUseCaseInput(tenantParam(r), chi.URLParam(r, "symbol")))
	h.respond(w, r, txn, err)
}

// Reverse posts a correction that undoes a transaction.
func (h *TransferHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	var req dto.ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transferUC.Reverse(r.Context(), usecase.ReverseInput{
		Tenant:        tenantParam(r),
		TransactionID: chi.URLParam(r, "id"),
		Memo:          req.Memo,
	})
	h.respond(w, r, txn, err)
}

// Get retrieves a transaction with its entries.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	txn, asset, err := h.reader.GetTransaction(r.Context(), tenantParam(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn, asset))
}

// respond renders a freshly posted transaction with amounts in its asset's
// decimals. It must not touch the store: once the use case returns, the
// movement is committed and any error here would invite a duplicate retry.
func (h *TransferHandler) respond(w http.ResponseWriter, r *http.Request, posted *usecase.PostedTransaction, err error) {
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(posted.Transaction, posted.Asset))
}
