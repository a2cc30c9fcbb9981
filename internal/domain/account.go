package domain

import (
	"time"
)

// AccountKind distinguishes holder accounts from the per-asset system accounts.
type AccountKind string

const (
	AccountKindUser     AccountKind = "user"
	AccountKindTreasury AccountKind = "treasury"
	AccountKindBurn     AccountKind = "burn"
	// AccountKindGenesis is the counter-entry for supply issued at asset creation.
	AccountKindGenesis AccountKind = "genesis"
)

// SystemAccountKinds are created exactly once, together with their asset.
var SystemAccountKinds = []AccountKind{AccountKindTreasury, AccountKindBurn, AccountKindGenesis}

// Valid reports whether k is a known kind.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountKindUser, AccountKindTreasury, AccountKindBurn, AccountKindGenesis:
		return true
	}
	return false
}

// Account holds the balance of one holder (or one system role) in one asset.
type Account struct {
	ID        string
	Tenant    string
	AssetID   string
	Holder    string
	Kind      AccountKind
	Balance   Amount
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowsNegative reports whether the account may hold a negative balance.
// Only user accounts are bounded below by zero.
func (a *Account) AllowsNegative() bool {
	return a.Kind != AccountKindUser
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount Amount) error {
	if a.AllowsNegative() {
		return nil
	}
	if a.Balance.Sub(amount).IsNegative() {
		return &InsufficientBalanceError{
			AccountID: a.ID,
			Balance:   a.Balance,
			Required:  amount,
		}
	}
	return nil
}

// ApplyDebit returns new balance after debit.
func (a *Account) ApplyDebit(amount Amount) Amount {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount Amount) Amount {
	return a.Balance.Add(amount)
}

// Untouched reports whether the account was created but never moved.
func (a *Account) Untouched() bool {
	return a.Version == 0 && a.Balance.IsZero()
}
