package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/vcledger/internal/domain"
)

// LedgerUseCase owns the store transaction boundary and the one primitive
// every money-moving operation funnels through.
type LedgerUseCase struct {
	txManager       TxManager
	assetRepo       AssetRepository
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator

	retrier  Retrier
	cache    Cache
	metrics  Metrics
	timeout  time.Duration
	cacheTTL time.Duration
	now      func() time.Time
}

// NewLedgerUseCase creates a new LedgerUseCase. outboxRepo may be nil.
func NewLedgerUseCase(
	txManager TxManager,
	assetRepo AssetRepository,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		assetRepo:       assetRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		metrics:         noopMetrics{},
		timeout:         DefaultTransactionTimeout,
		cacheTTL:        DefaultBalanceCacheTTL,
		now:             time.Now,
	}
}

// WithRetrier re-runs whole store transactions on transient conflicts.
func (uc *LedgerUseCase) WithRetrier(r Retrier) *LedgerUseCase {
	uc.retrier = r
	return uc
}

// WithCache enables the balance cache. Keys are dropped after every commit
// that moves the cached account.
func (uc *LedgerUseCase) WithCache(c Cache, ttl time.Duration) *LedgerUseCase {
	uc.cache = c
	if ttl > 0 {
		uc.cacheTTL = ttl
	}
	return uc
}

// WithMetrics sets the metrics recorder.
func (uc *LedgerUseCase) WithMetrics(m Metrics) *LedgerUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// WithTimeout overrides DefaultTransactionTimeout.
func (uc *LedgerUseCase) WithTimeout(d time.Duration) *LedgerUseCase {
	if d > 0 {
		uc.timeout = d
	}
	return uc
}

// unitOfWork is one attempt of one store transaction.
type unitOfWork struct {
	tx      Tx
	touched map[string]cachedBalance
	posted  []domain.TransactionKind
	started time.Time
}

// cachedBalance is a committed user balance and the account version it
// belongs to.
type cachedBalance struct {
	balance domain.Amount
	version int64
}

func (u *unitOfWork) touch(cacheKey string, balance domain.Amount, version int64) {
	u.touched[cacheKey] = cachedBalance{balance: balance, version: version}
}

// execute runs fn inside a store transaction. Nothing fn writes is visible
// unless Commit succeeds; any failure rolls the whole unit back.
func (uc *LedgerUseCase) execute(ctx context.Context, operation string, fn func(ctx context.Context, uow *unitOfWork) error) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	var uow *unitOfWork
	attempt := func() error {
		uow = &unitOfWork{touched: make(map[string]cachedBalance), started: time.Now()}

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		uow.tx = tx
		if err := fn(ctx, uow); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, attempt)
	} else {
		err = attempt()
	}

	if err != nil {
		err = wrapStoreError(err)
		uc.metrics.OperationFailed(operation, domain.Classify(err))
		return err
	}

	for _, kind := range uow.posted {
		uc.metrics.TransactionPosted(kind, time.Since(uow.started))
	}
	uc.refreshCache(ctx, uow)

	return nil
}

// refreshCache writes committed balances through to the cache. Versions
// keep a slower concurrent reader from putting back an older balance.
func (uc *LedgerUseCase) refreshCache(ctx context.Context, uow *unitOfWork) {
	if uc.cache == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	for key, cached := range uow.touched {
		if err := uc.cache.SetIfNewer(ctx, key, cached.balance.String(), cached.version, uc.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to refresh balance cache")
		}
	}
}

func wrapStoreError(err error) error {
	if errors.Is(err, domain.ErrStore) || domain.IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStore, err)
}

func balanceCacheKey(tenant, symbol, holder string) string {
	return "balance:" + tenant + ":" + symbol + ":" + holder
}

// PostInput describes one balanced transaction against a single asset.
type PostInput struct {
	Asset      *domain.Asset
	Kind       domain.TransactionKind
	Memo       string
	Debits     []domain.Posting
	Credits    []domain.Posting
	ReversesID *string
}

// PostBalancedTransactionInput is the public form of PostInput, addressed by symbol.
type PostBalancedTransactionInput struct {
	Tenant  string
	Symbol  string
	Kind    domain.TransactionKind
	Memo    string
	Debits  []domain.Posting
	Credits []domain.Posting
}

// PostBalancedTransaction commits an arbitrary balanced set of postings in
// its own store transaction.
func (uc *LedgerUseCase) PostBalancedTransaction(ctx context.Context, input PostBalancedTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateTenant(input.Tenant); err != nil {
		return nil, err
	}
	if err := domain.ValidateMemo(input.Memo); err != nil {
		return nil, err
	}
	symbol, err := domain.NormalizeSymbol(input.Symbol)
	if err != nil {
		return nil, err
	}

	kind := input.Kind
	if kind == "" {
		kind = domain.TransactionKindCorrection
	}

	var txn *domain.Transaction
	err = uc.execute(ctx, "post", func(ctx context.Context, uow *unitOfWork) error {
		asset, err := uc.assetRepo.GetBySymbolTx(ctx, uow.tx, input.Tenant, symbol, false)
		if err != nil {
			return err
		}

		txn, err = uc.post(ctx, uow, PostInput{
			Asset:   asset,
			Kind:    kind,
			Memo:    input.Memo,
			Debits:  input.Debits,
			Credits: input.Credits,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// post is the single enforcement point for the balance and non-negativity
// invariants. It must run inside execute.
func (uc *LedgerUseCase) post(ctx context.Context, uow *unitOfWork, input PostInput) (*domain.Transaction, error) {
	asset := input.Asset

	// 1. Balanced postings
	if err := domain.ValidatePostings(input.Debits, input.Credits); err != nil {
		if errors.Is(err, domain.ErrUnbalanced) {
			log.Error().
				Err(err).
				Str("tenant", asset.Tenant).
				Str("symbol", asset.Symbol).
				Str("kind", string(input.Kind)).
				Msg("refusing to post unbalanced transaction")
		}
		return nil, err
	}

	// 2. Lock accounts in sorted order
	accountIDs := collectAccountIDs(input.Debits, input.Credits)
	sort.Strings(accountIDs)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, uow.tx, accountIDs)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(accountIDs) {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, acc := range accounts {
		if acc.Tenant != asset.Tenant || acc.AssetID != asset.ID {
			return nil, fmt.Errorf("%w: %s does not hold %s", domain.ErrAccountNotFound, acc.ID, asset.Symbol)
		}
		accountMap[acc.ID] = acc
	}

	// 3. Non-negativity against the locked balances
	debitTotals := make(map[string]domain.Amount, len(input.Debits))
	for _, p := range input.Debits {
		debitTotals[p.AccountID] = debitTotals[p.AccountID].Add(p.Amount)
	}
	for _, id := range accountIDs {
		total, ok := debitTotals[id]
		if !ok {
			continue
		}
		if err := accountMap[id].ValidateDebit(total); err != nil {
			return nil, err
		}
	}

	// 4. Write transaction, entries and balances
	now := uc.now().UTC()
	txn := &domain.Transaction{
		ID:         uc.idGen.Generate(),
		Tenant:     asset.Tenant,
		AssetID:    asset.ID,
		Kind:       input.Kind,
		Memo:       input.Memo,
		ReversesID: input.ReversesID,
		CreatedAt:  now,
	}
	if err := uc.transactionRepo.Create(ctx, uow.tx, txn); err != nil {
		return nil, err
	}

	for _, p := range input.Debits {
		if err := uc.writeEntry(ctx, uow, txn, accountMap[p.AccountID], domain.Debit, p.Amount, now); err != nil {
			return nil, err
		}
	}
	for _, p := range input.Credits {
		if err := uc.writeEntry(ctx, uow, txn, accountMap[p.AccountID], domain.Credit, p.Amount, now); err != nil {
			return nil, err
		}
	}

	if err := uc.emit(ctx, uow, domain.NewTransactionPostedEvent(uc.idGen.Generate(), asset, txn)); err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		if acc.Kind == domain.AccountKindUser {
			uow.touch(balanceCacheKey(asset.Tenant, asset.Symbol, acc.Holder), acc.Balance, acc.Version)
		}
	}
	uow.posted = append(uow.posted, txn.Kind)

	return txn, nil
}

func (uc *LedgerUseCase) writeEntry(
	ctx context.Context,
	uow *unitOfWork,
	txn *domain.Transaction,
	acc *domain.Account,
	direction domain.Direction,
	amount domain.Amount,
	now time.Time,
) error {
	previous := acc.Balance

	current := acc.ApplyCredit(amount)
	if direction == domain.Debit {
		current = acc.ApplyDebit(amount)
	}

	entry := &domain.Entry{
		ID:                     uc.idGen.Generate(),
		Tenant:                 txn.Tenant,
		TransactionID:          txn.ID,
		AccountID:              acc.ID,
		Direction:              direction,
		Amount:                 amount,
		AccountPreviousBalance: previous,
		AccountCurrentBalance:  current,
		AccountVersion:         acc.Version + 1,
		CreatedAt:              now,
	}

	if err := uc.entryRepo.Create(ctx, uow.tx, entry); err != nil {
		return err
	}
	if err := uc.accountRepo.UpdateBalance(ctx, uow.tx, acc.ID, current, now); err != nil {
		return err
	}

	acc.Balance = current
	acc.Version++
	acc.UpdatedAt = now
	txn.Entries = append(txn.Entries, entry)

	return nil
}

func (uc *LedgerUseCase) emit(ctx context.Context, uow *unitOfWork, event *domain.OutboxEvent) error {
	if uc.outboxRepo == nil {
		return nil
	}
	return uc.outboxRepo.Create(ctx, uow.tx, event)
}

// resolveUser returns holder's account in asset, creating it on first use.
func (uc *LedgerUseCase) resolveUser(ctx context.Context, uow *unitOfWork, asset *domain.Asset, holder string) (*domain.Account, error) {
	if err := domain.ValidateHolder(holder); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	return uc.accountRepo.EnsureUserTx(ctx, uow.tx, &domain.Account{
		ID:        uc.idGen.Generate(),
		Tenant:    asset.Tenant,
		AssetID:   asset.ID,
		Holder:    holder,
		Kind:      domain.AccountKindUser,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// systemAccount fetches a treasury, burn or genesis account. These are never
// created here; CreateAsset makes them.
func (uc *LedgerUseCase) systemAccount(ctx context.Context, uow *unitOfWork, asset *domain.Asset, kind domain.AccountKind) (*domain.Account, error) {
	return uc.accountRepo.GetSystemTx(ctx, uow.tx, asset.ID, kind)
}

func collectAccountIDs(debits, credits []domain.Posting) []string {
	seen := make(map[string]struct{}, len(debits)+len(credits))
	var ids []string
	for _, group := range [][]domain.Posting{debits, credits} {
		for _, p := range group {
			if _, ok := seen[p.AccountID]; ok {
				continue
			}
			seen[p.AccountID] = struct{}{}
			ids = append(ids, p.AccountID)
		}
	}
	return ids
}

type noopMetrics struct{}

func (noopMetrics) TransactionPosted(domain.TransactionKind, time.Duration) {}
func (noopMetrics) OperationFailed(string, domain.ErrorClass)              {}
func (noopMetrics) DriftDetected(int)                                      {}
func (noopMetrics) CacheLookup(bool)                                       {}
