package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/vcledger/internal/domain"
)

// InitialSupplyMemo is recorded on the issue transaction of a new asset.
const InitialSupplyMemo = "initial supply"

// AssetUseCase handles the asset registry.
type AssetUseCase struct {
	ledger      *LedgerUseCase
	assetRepo   AssetRepository
	accountRepo AccountRepository
}

// NewAssetUseCase creates a new AssetUseCase.
func NewAssetUseCase(ledger *LedgerUseCase) *AssetUseCase {
	return &AssetUseCase{
		ledger:      ledger,
		assetRepo:   ledger.assetRepo,
		accountRepo: ledger.accountRepo,
	}
}

// CreateAssetInput represents input for creating an asset.
type CreateAssetInput struct {
	Tenant        string
	Symbol        string
	Name          string
	Decimals      int32
	InitialSupply decimal.Decimal
}

// CreateAsset creates the asset, its treasury, burn and genesis accounts and,
// for a positive supply, the issue transaction crediting the treasury. It is
// all one store transaction.
func (uc *AssetUseCase) CreateAsset(ctx context.Context, input CreateAssetInput) (*domain.Asset, error) {
	if err := domain.ValidateTenant(input.Tenant); err != nil {
		return nil, err
	}
	symbol, err := domain.NormalizeSymbol(input.Symbol)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAssetName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateDecimals(input.Decimals); err != nil {
		return nil, err
	}
	if input.InitialSupply.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	supply := domain.AmountFromMajor(input.InitialSupply, input.Decimals)

	var asset *domain.Asset
	err = uc.ledger.execute(ctx, "create_asset", func(ctx context.Context, uow *unitOfWork) error {
		now := uc.ledger.now().UTC()
		asset = &domain.Asset{
			ID:        uc.ledger.idGen.Generate(),
			Tenant:    input.Tenant,
			Symbol:    symbol,
			Name:      strings.TrimSpace(input.Name),
			Decimals:  input.Decimals,
			CreatedAt: now,
		}
		if err := uc.assetRepo.Create(ctx, uow.tx, asset); err != nil {
			return err
		}

		system := make(map[domain.AccountKind]*domain.Account, len(domain.SystemAccountKinds))
		for _, kind := range domain.SystemAccountKinds {
			acc := &domain.Account{
				ID:        uc.ledger.idGen.Generate(),
				Tenant:    asset.Tenant,
				AssetID:   asset.ID,
				Kind:      kind,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := uc.accountRepo.CreateTx(ctx, uow.tx, acc); err != nil {
				return err
			}
			system[kind] = acc
		}

		if supply.IsPositive() {
			_, err := uc.ledger.post(ctx, uow, PostInput{
				Asset:   asset,
				Kind:    domain.TransactionKindIssue,
				Memo:    InitialSupplyMemo,
				Debits:  []domain.Posting{{AccountID: system[domain.AccountKindGenesis].ID, Amount: supply}},
				Credits: []domain.Posting{{AccountID: system[domain.AccountKindTreasury].ID, Amount: supply}},
			})
			if err != nil {
				return err
			}
		}

		return uc.ledger.emit(ctx, uow, domain.NewAssetEvent(uc.ledger.idGen.Generate(), domain.EventTypeAssetCreated, asset, now))
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

// DeleteAsset retires an asset. Every account except burn and genesis must
// be at zero. History is kept and the symbol is never reissued.
func (uc *AssetUseCase) DeleteAsset(ctx context.Context, tenant, rawSymbol string) error {
	if err := domain.ValidateTenant(tenant); err != nil {
		return err
	}
	symbol, err := domain.NormalizeSymbol(rawSymbol)
	if err != nil {
		return err
	}

	return uc.ledger.execute(ctx, "delete_asset", func(ctx context.Context, uow *unitOfWork) error {
		asset, err := uc.assetRepo.GetBySymbolTx(ctx, uow.tx, tenant, symbol, true)
		if err != nil {
			return err
		}

		accounts, err := uc.accountRepo.ListByAssetForUpdate(ctx, uow.tx, asset.ID)
		if err != nil {
			return err
		}

		for _, acc := range accounts {
			if acc.Kind == domain.AccountKindBurn || acc.Kind == domain.AccountKindGenesis {
				continue
			}
			if !acc.Balance.IsZero() {
				return fmt.Errorf("%w: %s account %q holds %s %s",
					domain.ErrNonZeroBalances, acc.Kind, acc.Holder, asset.FormatAmount(acc.Balance), asset.Symbol)
			}
		}

		now := uc.ledger.now().UTC()
		if err := uc.assetRepo.MarkDeleted(ctx, uow.tx, asset.ID, now); err != nil {
			return err
		}

		return uc.ledger.emit(ctx, uow, domain.NewAssetEvent(uc.ledger.idGen.Generate(), domain.EventTypeAssetDeleted, asset, now))
	})
}

// GetAsset returns a live asset by symbol.
func (uc *AssetUseCase) GetAsset(ctx context.Context, tenant, rawSymbol string) (*domain.Asset, error) {
	symbol, err := domain.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}
	return uc.assetRepo.GetBySymbol(ctx, tenant, symbol)
}

// ListAssets returns the tenant's live assets ordered by symbol.
func (uc *AssetUseCase) ListAssets(ctx context.Context, tenant string) ([]*domain.Asset, error) {
	if err := domain.ValidateTenant(tenant); err != nil {
		return nil, err
	}
	return uc.assetRepo.List(ctx, tenant)
}
