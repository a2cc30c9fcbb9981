package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrSelfTransfer     = errors.New("cannot transfer to the same holder")
	ErrInvalidDecimals  = errors.New("decimals out of range")
	ErrInvalidSymbol    = errors.New("invalid asset symbol")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidHolder    = errors.New("invalid holder")
	ErrInvalidTenant    = errors.New("invalid tenant")
	ErrMemoTooLong      = errors.New("memo too long")
	ErrNotReversible    = errors.New("transaction cannot be reversed")

	// Lookup errors
	ErrAssetNotFound       = errors.New("asset not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Conflict errors
	ErrDuplicateSymbol = errors.New("asset symbol already exists")
	ErrNonZeroBalances = errors.New("asset still has non-zero balances")
	ErrAlreadyReversed = errors.New("transaction already reversed")

	// Ledger errors
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNegativeUserBalance = errors.New("user balance cannot go negative")
	ErrUnbalanced          = errors.New("transaction debits and credits do not balance")

	// ErrStore wraps any failure of the underlying store.
	ErrStore = errors.New("ledger store failure")
)

// InsufficientBalanceError reports a debit that would take a user account below zero.
type InsufficientBalanceError struct {
	AccountID string
	Balance   Amount
	Required  Amount
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on account %s: have %s, need %s",
		e.AccountID, e.Balance, e.Required)
}

// Is matches both ErrInsufficientBalance and ErrNegativeUserBalance.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance || target == ErrNegativeUserBalance
}

// ErrorClass groups errors by how callers should react to them.
type ErrorClass string

const (
	ClassValidation   ErrorClass = "validation"
	ClassNotFound     ErrorClass = "not_found"
	ClassConflict     ErrorClass = "conflict"
	ClassInsufficient ErrorClass = "insufficient_balance"
	ClassUnbalanced   ErrorClass = "unbalanced"
	ClassStore        ErrorClass = "store"
)

var errorClasses = []struct {
	err   error
	class ErrorClass
}{
	{ErrInvalidAmount, ClassValidation},
	{ErrSelfTransfer, ClassValidation},
	{ErrInvalidDecimals, ClassValidation},
	{ErrInvalidSymbol, ClassValidation},
	{ErrInvalidAssetName, ClassValidation},
	{ErrInvalidHolder, ClassValidation},
	{ErrInvalidTenant, ClassValidation},
	{ErrMemoTooLong, ClassValidation},
	{ErrNotReversible, ClassValidation},
	{ErrAssetNotFound, ClassNotFound},
	{ErrAccountNotFound, ClassNotFound},
	{ErrTransactionNotFound, ClassNotFound},
	{ErrDuplicateSymbol, ClassConflict},
	{ErrNonZeroBalances, ClassConflict},
	{ErrAlreadyReversed, ClassConflict},
	{ErrInsufficientBalance, ClassInsufficient},
	{ErrNegativeUserBalance, ClassInsufficient},
	{ErrUnbalanced, ClassUnbalanced},
}

// Classify returns the class of err. Anything that is not a known domain
// error is a store failure.
func Classify(err error) ErrorClass {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrStore) {
		return ClassStore
	}
	for _, c := range errorClasses {
		if errors.Is(err, c.err) {
			return c.class
		}
	}
	return ClassStore
}

// IsDomainError reports whether err belongs to a class other than store.
func IsDomainError(err error) bool {
	return err != nil && Classify(err) != ClassStore
}
