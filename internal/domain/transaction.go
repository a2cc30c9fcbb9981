package domain

import (
	"fmt"
	"time"
)

// TransactionKind names the logical event a transaction records.
type TransactionKind string

const (
	TransactionKindIssue      TransactionKind = "issue"
	TransactionKindGive       TransactionKind = "give"
	TransactionKindPay        TransactionKind = "pay"
	TransactionKindBurn       TransactionKind = "burn"
	TransactionKindCorrection TransactionKind = "correction"
)

// Transaction is one immutable, balanced movement of a single asset.
type Transaction struct {
	ID         string
	Tenant     string
	AssetID    string
	Kind       TransactionKind
	Memo       string
	ReversesID *string
	CreatedAt  time.Time
	Entries    []*Entry
}

// Reversible reports whether a correction may be posted against t.
func (t *Transaction) Reversible() bool {
	return t.Kind != TransactionKindCorrection
}

// Direction is the side of an entry.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Opposite returns the other side.
func (d Direction) Opposite() Direction {
	if d == Debit {
		return Credit
	}
	return Debit
}

// Entry is one side of a transaction against one account. Amount is always
// positive; the direction carries the sign.
type Entry struct {
	ID                     string
	Tenant                 string
	TransactionID          string
	AccountID              string
	Direction              Direction
	Amount                 Amount
	AccountPreviousBalance Amount
	AccountCurrentBalance  Amount
	AccountVersion         int64
	CreatedAt              time.Time
}

// Signed returns the entry's effect on its account's balance.
func (e *Entry) Signed() Amount {
	if e.Direction == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Posting is a requested debit or credit before it is written.
type Posting struct {
	AccountID string
	Amount    Amount
}

// ValidatePostings checks that debits and credits are non-empty, strictly
// positive and sum to the same total.
func ValidatePostings(debits, credits []Posting) error {
	if len(debits) == 0 || len(credits) == 0 {
		return fmt.Errorf("%w: need at least one debit and one credit", ErrUnbalanced)
	}

	var debitTotal, creditTotal Amount
	for _, p := range debits {
		if !p.Amount.IsPositive() {
			return ErrInvalidAmount
		}
		debitTotal = debitTotal.Add(p.Amount)
	}
	for _, p := range credits {
		if !p.Amount.IsPositive() {
			return ErrInvalidAmount
		}
		creditTotal = creditTotal.Add(p.Amount)
	}

	if !debitTotal.Equal(creditTotal) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalanced, debitTotal, creditTotal)
	}

	return nil
}

// EntriesBalanced reports whether a set of stored entries nets to zero with
// at least one entry on each side.
func EntriesBalanced(entries []*Entry) bool {
	var net Amount
	var debits, credits int
	for _, e := range entries {
		net = net.Add(e.Signed())
		if e.Direction == Debit {
			debits++
		} else {
			credits++
		}
	}
	return debits > 0 && credits > 0 && net.IsZero()
}
