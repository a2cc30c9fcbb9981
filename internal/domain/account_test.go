package domain

import (
	"errors"
	"testing"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		kind        AccountKind
		balance     int64
		debitAmount int64
		expectError bool
	}{
		{
			name:        "user - debit more than balance",
			kind:        AccountKindUser,
			balance:     100,
			debitAmount: 150,
			expectError: true,
		},
		{
			name:        "user - debit exact balance",
			kind:        AccountKindUser,
			balance:     100,
			debitAmount: 100,
			expectError: false,
		},
		{
			name:        "user - debit less than balance",
			kind:        AccountKindUser,
			balance:     100,
			debitAmount: 50,
			expectError: false,
		},
		{
			name:        "treasury - debit into negative",
			kind:        AccountKindTreasury,
			balance:     0,
			debitAmount: 500,
			expectError: false,
		},
		{
			name:        "genesis - debit into negative",
			kind:        AccountKindGenesis,
			balance:     -10,
			debitAmount: 10,
			expectError: false,
		},
		{
			name:        "burn - debit into negative",
			kind:        AccountKindBurn,
			balance:     0,
			debitAmount: 1,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{
				ID:      "acc-1",
				Kind:    tt.kind,
				Balance: NewAmount(tt.balance),
			}

			err := acc.ValidateDebit(NewAmount(tt.debitAmount))

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ValidateDebitErrorDetails(t *testing.T) {
	acc := &Account{ID: "acc-1", Kind: AccountKindUser, Balance: NewAmount(30)}

	err := acc.ValidateDebit(NewAmount(31))

	var insufficient *InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientBalanceError, got %v", err)
	}
	if insufficient.AccountID != "acc-1" || !insufficient.Balance.Equal(NewAmount(30)) || !insufficient.Required.Equal(NewAmount(31)) {
		t.Fatalf("unexpected error details: %+v", insufficient)
	}
	if !errors.Is(err, ErrInsufficientBalance) || !errors.Is(err, ErrNegativeUserBalance) {
		t.Fatalf("expected error to match both insufficient sentinels")
	}
}

func TestAccount_ApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: NewAmount(100)}

	if got := acc.ApplyDebit(NewAmount(40)); !got.Equal(NewAmount(60)) {
		t.Errorf("expected 60 after debit, got %s", got)
	}

	if got := acc.ApplyCredit(NewAmount(40)); !got.Equal(NewAmount(140)) {
		t.Errorf("expected 140 after credit, got %s", got)
	}
}

func TestAccount_AllowsNegative(t *testing.T) {
	for _, kind := range SystemAccountKinds {
		acc := &Account{Kind: kind}
		if !acc.AllowsNegative() {
			t.Errorf("expected %s to allow negative balance", kind)
		}
	}

	user := &Account{Kind: AccountKindUser}
	if user.AllowsNegative() {
		t.Error("expected user account to be bounded below by zero")
	}
}

func TestAccount_Untouched(t *testing.T) {
	if !(&Account{}).Untouched() {
		t.Error("expected fresh account to be untouched")
	}
	if (&Account{Version: 2}).Untouched() {
		t.Error("expected account with history to be touched even at zero")
	}
}

func TestAccountKind_Valid(t *testing.T) {
	if AccountKind("vault").Valid() {
		t.Error("unexpected valid kind")
	}
	if !AccountKindTreasury.Valid() {
		t.Error("treasury should be valid")
	}
}
