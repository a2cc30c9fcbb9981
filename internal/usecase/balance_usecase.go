package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/iho/vcledger/internal/domain"
)

// BalanceUseCase serves balances for display. Reads run outside store
// transactions and may lag a concurrent commit; they never gate a write.
type BalanceUseCase struct {
	ledger      *LedgerUseCase
	assetRepo   AssetRepository
	accountRepo AccountRepository
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(ledger *LedgerUseCase) *BalanceUseCase {
	return &BalanceUseCase{
		ledger:      ledger,
		assetRepo:   ledger.assetRepo,
		accountRepo: ledger.accountRepo,
	}
}

// Holding is a holder's balance in one asset.
type Holding struct {
	Asset   *domain.Asset
	Balance domain.Amount
}

// TreasuryPosition is the system-side view of one asset.
type TreasuryPosition struct {
	Asset    *domain.Asset
	Treasury domain.Amount
	Burned   domain.Amount
}

// GetBalance returns holder's balance in an asset. A holder that never
// transacted has a zero balance, not an error.
func (uc *BalanceUseCase) GetBalance(ctx context.Context, tenant, rawSymbol, holder string) (*Holding, error) {
	if err := domain.ValidateHolder(holder); err != nil {
		return nil, err
	}
	symbol, err := domain.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	asset, err := uc.assetRepo.GetBySymbol(ctx, tenant, symbol)
	if err != nil {
		return nil, err
	}

	key := balanceCacheKey(tenant, asset.Symbol, holder)
	if cached, ok := uc.cachedBalance(ctx, key); ok {
		return &Holding{Asset: asset, Balance: cached}, nil
	}

	var (
		balance domain.Amount
		version int64
	)
	account, err := uc.accountRepo.GetUser(ctx, asset.ID, holder)
	switch {
	case err == nil:
		balance, version = account.Balance, account.Version
	case errors.Is(err, domain.ErrAccountNotFound):
	default:
		return nil, err
	}

	if uc.ledger.cache != nil {
		if err := uc.ledger.cache.SetIfNewer(ctx, key, balance.String(), version, uc.ledger.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache balance")
		}
	}

	return &Holding{Asset: asset, Balance: balance}, nil
}

func (uc *BalanceUseCase) cachedBalance(ctx context.Context, key string) (domain.Amount, bool) {
	if uc.ledger.cache == nil {
		return domain.Amount{}, false
	}

	raw, err := uc.ledger.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("balance cache read failed")
		}
		uc.ledger.metrics.CacheLookup(false)
		return domain.Amount{}, false
	}

	amount, err := domain.ParseUnits(raw)
	if err != nil {
		uc.ledger.metrics.CacheLookup(false)
		return domain.Amount{}, false
	}

	uc.ledger.metrics.CacheLookup(true)
	return amount, true
}

// ListHoldings returns every live asset in which holder has an account,
// skipping accounts that were created but never moved.
func (uc *BalanceUseCase) ListHoldings(ctx context.Context, tenant, holder string) ([]*Holding, error) {
	if err := domain.ValidateHolder(holder); err != nil {
		return nil, err
	}

	assets, err := uc.assetsByID(ctx, tenant)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.ListByHolder(ctx, tenant, holder)
	if err != nil {
		return nil, err
	}

	holdings := make([]*Holding, 0, len(accounts))
	for _, acc := range accounts {
		asset, ok := assets[acc.AssetID]
		if !ok || acc.Untouched() {
			continue
		}
		holdings = append(holdings, &Holding{Asset: asset, Balance: acc.Balance})
	}

	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Asset.Symbol < holdings[j].Asset.Symbol
	})

	return holdings, nil
}

// ListTreasury returns treasury and burned totals for every live asset.
func (uc *BalanceUseCase) ListTreasury(ctx context.Context, tenant string) ([]*TreasuryPosition, error) {
	assets, err := uc.assetRepo.List(ctx, tenant)
	if err != nil {
		return nil, err
	}

	treasuries, err := uc.accountRepo.ListByKind(ctx, tenant, domain.AccountKindTreasury)
	if err != nil {
		return nil, err
	}
	burns, err := uc.accountRepo.ListByKind(ctx, tenant, domain.AccountKindBurn)
	if err != nil {
		return nil, err
	}

	byAsset := make(map[string]*TreasuryPosition, len(assets))
	positions := make([]*TreasuryPosition, 0, len(assets))
	for _, asset := range assets {
		pos := &TreasuryPosition{Asset: asset}
		byAsset[asset.ID] = pos
		positions = append(positions, pos)
	}

	for _, acc := range treasuries {
		if pos, ok := byAsset[acc.AssetID]; ok {
			pos.Treasury = acc.Balance
		}
	}
	for _, acc := range burns {
		if pos, ok := byAsset[acc.AssetID]; ok {
			pos.Burned = acc.Balance
		}
	}

	return positions, nil
}

func (uc *BalanceUseCase) assetsByID(ctx context.Context, tenant string) (map[string]*domain.Asset, error) {
	assets, err := uc.assetRepo.List(ctx, tenant)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	return byID, nil
}
