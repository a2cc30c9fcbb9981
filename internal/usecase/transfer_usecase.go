package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/vcledger/internal/domain"
)

// TransferUseCase handles pay, give, burn and reversal.
type TransferUseCase struct {
	ledger          *LedgerUseCase
	assetRepo       AssetRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(ledger *LedgerUseCase) *TransferUseCase {
	return &TransferUseCase{
		ledger:          ledger,
		assetRepo:       ledger.assetRepo,
		transactionRepo: ledger.transactionRepo,
		entryRepo:       ledger.entryRepo,
	}
}

// PayInput represents a holder-to-holder payment. Amount is in whole coins
// and is truncated to the asset's decimals.
type PayInput struct {
	Tenant string
	Symbol string
	From   string
	To     string
	Amount decimal.Decimal
	Memo   string
}

// GiveInput represents an issue of new supply from the treasury to a holder.
type GiveInput struct {
	Tenant string
	Symbol string
	To     string
	Amount decimal.Decimal
	Memo   string
}

// BurnInput represents destroying supply. An empty From burns from the treasury.
type BurnInput struct {
	Tenant string
	Symbol string
	From   string
	Amount decimal.Decimal
	Memo   string
}

// PostedTransaction is a committed transaction with the asset it moved.
// Entries carry their balance snapshots.
type PostedTransaction struct {
	*domain.Transaction
	Asset *domain.Asset
}

// ReverseInput represents a correction that undoes a committed transaction.
type ReverseInput struct {
	Tenant        string
	TransactionID string
	Memo          string
}

// Pay moves amount from one holder to another.
func (uc *TransferUseCase) Pay(ctx context.Context, input PayInput) (*PostedTransaction, error) {
	// 0. Validate inputs before starting transaction
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.From == input.To {
		return nil, domain.ErrSelfTransfer
	}
	symbol, err := validateMovement(input.Tenant, input.Symbol, input.Memo)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateHolder(input.From); err != nil {
		return nil, err
	}
	if err := domain.ValidateHolder(input.To); err != nil {
		return nil, err
	}

	var posted PostedTransaction
	err = uc.ledger.execute(ctx, "pay", func(ctx context.Context, uow *unitOfWork) error {
		asset, amount, err := uc.assetAmount(ctx, uow, input.Tenant, symbol, input.Amount)
		if err != nil {
			return err
		}

		from, err := uc.ledger.resolveUser(ctx, uow, asset, input.From)
		if err != nil {
			return err
		}
		to, err := uc.ledger.resolveUser(ctx, uow, asset, input.To)
		if err != nil {
			return err
		}

		posted.Asset = asset
		posted.Transaction, err = uc.ledger.post(ctx, uow, PostInput{
			Asset:   asset,
			Kind:    domain.TransactionKindPay,
			Memo:    input.Memo,
			Debits:  []domain.Posting{{AccountID: from.ID, Amount: amount}},
			Credits: []domain.Posting{{AccountID: to.ID, Amount: amount}},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &posted, nil
}

// Give issues amount from the treasury to a holder. The treasury is unbounded.
func (uc *TransferUseCase) Give(ctx context.Context, input GiveInput) (*PostedTransaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	symbol, err := validateMovement(input.Tenant, input.Symbol, input.Memo)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateHolder(input.To); err != nil {
		return nil, err
	}

	var posted PostedTransaction
	err = uc.ledger.execute(ctx, "give", func(ctx context.Context, uow *unitOfWork) error {
		asset, amount, err := uc.assetAmount(ctx, uow, input.Tenant, symbol, input.Amount)
		if err != nil {
			return err
		}

		treasury, err := uc.ledger.systemAccount(ctx, uow, asset, domain.AccountKindTreasury)
		if err != nil {
			return err
		}
		to, err := uc.ledger.resolveUser(ctx, uow, asset, input.To)
		if err != nil {
			return err
		}

		posted.Asset = asset
		posted.Transaction, err = uc.ledger.post(ctx, uow, PostInput{
			Asset:   asset,
			Kind:    domain.TransactionKindGive,
			Memo:    input.Memo,
			Debits:  []domain.Posting{{AccountID: treasury.ID, Amount: amount}},
			Credits: []domain.Posting{{AccountID: to.ID, Amount: amount}},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &posted, nil
}

// Burn destroys amount held by a holder, or by the treasury when From is empty.
func (uc *TransferUseCase) Burn(ctx context.Context, input BurnInput) (*PostedTransaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	symbol, err := validateMovement(input.Tenant, input.Symbol, input.Memo)
	if err != nil {
		return nil, err
	}

	var posted PostedTransaction
	err = uc.ledger.execute(ctx, "burn", func(ctx context.Context, uow *unitOfWork) error {
		asset, amount, err := uc.assetAmount(ctx, uow, input.Tenant, symbol, input.Amount)
		if err != nil {
			return err
		}

		var source *domain.Account
		if input.From == "" {
			source, err = uc.ledger.systemAccount(ctx, uow, asset, domain.AccountKindTreasury)
		} else {
			source, err = uc.ledger.resolveUser(ctx, uow, asset, input.From)
		}
		if err != nil {
			return err
		}

		burn, err := uc.ledger.systemAccount(ctx, uow, asset, domain.AccountKindBurn)
		if err != nil {
			return err
		}

		posted.Asset = asset
		posted.Transaction, err = uc.ledger.post(ctx, uow, PostInput{
			Asset:   asset,
			Kind:    domain.TransactionKindBurn,
			Memo:    input.Memo,
			Debits:  []domain.Posting{{AccountID: source.ID, Amount: amount}},
			Credits: []domain.Posting{{AccountID: burn.ID, Amount: amount}},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &posted, nil
}

// Reverse posts a correction that swaps every entry of the target
// transaction. A transaction is reversed at most once and corrections are
// final.
func (uc *TransferUseCase) Reverse(ctx context.Context, input ReverseInput) (*PostedTransaction, error) {
	if err := domain.ValidateTenant(input.Tenant); err != nil {
		return nil, err
	}
	if err := domain.ValidateMemo(input.Memo); err != nil {
		return nil, err
	}

	var posted PostedTransaction
	err := uc.ledger.execute(ctx, "reverse", func(ctx context.Context, uow *unitOfWork) error {
		original, err := uc.transactionRepo.GetByIDTx(ctx, uow.tx, input.Tenant, input.TransactionID)
		if err != nil {
			return err
		}
		if !original.Reversible() {
			return domain.ErrNotReversible
		}

		_, err = uc.transactionRepo.GetReversalTx(ctx, uow.tx, original.ID)
		switch {
		case err == nil:
			return domain.ErrAlreadyReversed
		case !errors.Is(err, domain.ErrTransactionNotFound):
			return err
		}

		asset, err := uc.assetRepo.GetByIDTx(ctx, uow.tx, input.Tenant, original.AssetID)
		if err != nil {
			return err
		}
		if asset.Deleted() {
			return domain.ErrAssetNotFound
		}

		entries, err := uc.entryRepo.ListByTransactionTx(ctx, uow.tx, original.ID)
		if err != nil {
			return err
		}

		var debits, credits []domain.Posting
		for _, e := range entries {
			posting := domain.Posting{AccountID: e.AccountID, Amount: e.Amount}
			if e.Direction == domain.Debit {
				credits = append(credits, posting)
			} else {
				debits = append(debits, posting)
			}
		}

		memo := input.Memo
		if memo == "" {
			memo = fmt.Sprintf("reversal of %s", original.ID)
		}

		posted.Asset = asset
		posted.Transaction, err = uc.ledger.post(ctx, uow, PostInput{
			Asset:      asset,
			Kind:       domain.TransactionKindCorrection,
			Memo:       memo,
			Debits:     debits,
			Credits:    credits,
			ReversesID: &original.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &posted, nil
}

// assetAmount loads the asset under a shared lock and converts a whole-coin
// amount to units. An amount that truncates to zero is rejected.
func (uc *TransferUseCase) assetAmount(ctx context.Context, uow *unitOfWork, tenant, symbol string, major decimal.Decimal) (*domain.Asset, domain.Amount, error) {
	asset, err := uc.assetRepo.GetBySymbolTx(ctx, uow.tx, tenant, symbol, false)
	if err != nil {
		return nil, domain.Amount{}, err
	}

	amount := domain.AmountFromMajor(major, asset.Decimals)
	if !amount.IsPositive() {
		return nil, domain.Amount{}, fmt.Errorf("%w: %s is below one unit of %s", domain.ErrInvalidAmount, major, asset.Symbol)
	}

	return asset, amount, nil
}

func validateMovement(tenant, symbol, memo string) (string, error) {
	if err := domain.ValidateTenant(tenant); err != nil {
		return "", err
	}
	if err := domain.ValidateMemo(memo); err != nil {
		return "", err
	}
	return domain.NormalizeSymbol(symbol)
}
