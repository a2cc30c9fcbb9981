package usecase

import (
	"context"

	"github.com/iho/vcledger/internal/domain"
)

// AccountUseCase resolves (tenant, asset, holder) to accounts.
type AccountUseCase struct {
	ledger    *LedgerUseCase
	assetRepo AssetRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(ledger *LedgerUseCase) *AccountUseCase {
	return &AccountUseCase{
		ledger:    ledger,
		assetRepo: ledger.assetRepo,
	}
}

// ResolveInput identifies an account.
type ResolveInput struct {
	Tenant string
	Symbol string
	Holder string
	Kind   domain.AccountKind
}

// Resolve returns the account for input. User accounts are created on first
// reference; system accounts only ever come from CreateAsset.
func (uc *AccountUseCase) Resolve(ctx context.Context, input ResolveInput) (*domain.Account, error) {
	if err := domain.ValidateTenant(input.Tenant); err != nil {
		return nil, err
	}
	symbol, err := domain.NormalizeSymbol(input.Symbol)
	if err != nil {
		return nil, err
	}

	kind := input.Kind
	if kind == "" {
		kind = domain.AccountKindUser
	}
	if !kind.Valid() {
		return nil, domain.ErrAccountNotFound
	}

	var account *domain.Account
	err = uc.ledger.execute(ctx, "resolve_account", func(ctx context.Context, uow *unitOfWork) error {
		asset, err := uc.assetRepo.GetBySymbolTx(ctx, uow.tx, input.Tenant, symbol, false)
		if err != nil {
			return err
		}

		if kind == domain.AccountKindUser {
			account, err = uc.ledger.resolveUser(ctx, uow, asset, input.Holder)
		} else {
			account, err = uc.ledger.systemAccount(ctx, uow, asset, kind)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}
