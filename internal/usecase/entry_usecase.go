package usecase

import (
	"context"

	"github.com/iho/vcledger/internal/domain"
)

// EntryUseCase serves transaction history.
type EntryUseCase struct {
	assetRepo       AssetRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(assetRepo AssetRepository, transactionRepo TransactionRepository, entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
	}
}

// HolderEntry is one line of a holder's statement.
type HolderEntry struct {
	Entry       *domain.Entry
	Transaction *domain.Transaction
	Asset       *domain.Asset
}

// GetTransaction returns a transaction with its entries.
func (uc *EntryUseCase) GetTransaction(ctx context.Context, tenant, id string) (*domain.Transaction, *domain.Asset, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, tenant, id)
	if err != nil {
		return nil, nil, err
	}

	entries, err := uc.entryRepo.ListByTransaction(ctx, txn.ID)
	if err != nil {
		return nil, nil, err
	}
	txn.Entries = entries

	asset, err := uc.assetRepo.GetByID(ctx, tenant, txn.AssetID)
	if err != nil {
		return nil, nil, err
	}

	return txn, asset, nil
}

// ListHolderEntriesInput represents input for listing a holder's entries.
type ListHolderEntriesInput struct {
	Tenant string
	Holder string
	Limit  int
	Offset int
}

// ListHolderEntries lists entries on every account of holder, newest first.
func (uc *EntryUseCase) ListHolderEntries(ctx context.Context, input ListHolderEntriesInput) ([]*HolderEntry, error) {
	if err := domain.ValidateHolder(input.Holder); err != nil {
		return nil, err
	}
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	entries, err := uc.entryRepo.ListByHolder(ctx, input.Tenant, input.Holder, limit, offset)
	if err != nil {
		return nil, err
	}

	assets := make(map[string]*domain.Asset)
	result := make([]*HolderEntry, 0, len(entries))
	for _, e := range entries {
		txn, err := uc.transactionRepo.GetByID(ctx, input.Tenant, e.TransactionID)
		if err != nil {
			return nil, err
		}

		asset, ok := assets[txn.AssetID]
		if !ok {
			asset, err = uc.assetRepo.GetByID(ctx, input.Tenant, txn.AssetID)
			if err != nil {
				return nil, err
			}
			assets[txn.AssetID] = asset
		}

		result = append(result, &HolderEntry{Entry: e, Transaction: txn, Asset: asset})
	}

	return result, nil
}
