package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

// CreateAssetRequest represents a request to create an asset.
type CreateAssetRequest struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Decimals      int32           `json:"decimals"`
	InitialSupply decimal.Decimal `json:"initial_supply"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAssetRequest) ToUseCaseInput(tenant string) usecase.CreateAssetInput {
	return usecase.CreateAssetInput{
		Tenant:        tenant,
		Symbol:        r.Symbol,
		Name:          r.Name,
		Decimals:      r.Decimals,
		InitialSupply: r.InitialSupply,
	}
}

// GiveRequest represents a request to issue coins from the treasury.
type GiveRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Memo   string          `json:"memo,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *GiveRequest) ToUseCaseInput(tenant, symbol string) usecase.GiveInput {
	return usecase.GiveInput{
		Tenant: tenant,
		Symbol: symbol,
		To:     r.To,
		Amount: r.Amount,
		Memo:   r.Memo,
	}
}

// PayRequest represents a holder-to-holder payment. From is ignored when the
// caller is authenticated; the token's user pays.
type PayRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Memo   string          `json:"memo,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PayRequest) ToUseCaseInput(tenant, symbol string) usecase.PayInput {
	return usecase.PayInput{
		Tenant: tenant,
		Symbol: symbol,
		From:   r.From,
		To:     r.To,
		Amount: r.Amount,
		Memo:   r.Memo,
	}
}

// BurnRequest represents a request to destroy coins. An empty From burns
// from the treasury.
type BurnRequest struct {
	From   string          `json:"from,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Memo   string          `json:"memo,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *BurnRequest) ToUseCaseInput(tenant, symbol string) usecase.BurnInput {
	return usecase.BurnInput{
		Tenant: tenant,
		Symbol: symbol,
		From:   r.From,
		Amount: r.Amount,
		Memo:   r.Memo,
	}
}

// ReverseRequest represents a request to reverse a transaction.
type ReverseRequest struct {
	Memo string `json:"memo,omitempty"`
}

// ResolveAccountRequest identifies a user account by holder or a system
// account by kind.
type ResolveAccountRequest struct {
	Holder string `json:"holder,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ResolveAccountRequest) ToUseCaseInput(tenant, symbol string) usecase.ResolveInput {
	return usecase.ResolveInput{
		Tenant: tenant,
		Symbol: symbol,
		Holder: r.Holder,
		Kind:   domain.AccountKind(r.Kind),
	}
}
