package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePostings(t *testing.T) {
	p := func(id string, units int64) Posting {
		return Posting{AccountID: id, Amount: NewAmount(units)}
	}

	tests := []struct {
		name    string
		debits  []Posting
		credits []Posting
		wantErr error
	}{
		{name: "simple pair", debits: []Posting{p("a", 10)}, credits: []Posting{p("b", 10)}},
		{name: "split credit", debits: []Posting{p("a", 10)}, credits: []Posting{p("b", 4), p("c", 6)}},
		{name: "unbalanced", debits: []Posting{p("a", 10)}, credits: []Posting{p("b", 9)}, wantErr: ErrUnbalanced},
		{name: "no credits", debits: []Posting{p("a", 10)}, wantErr: ErrUnbalanced},
		{name: "no debits", credits: []Posting{p("a", 10)}, wantErr: ErrUnbalanced},
		{name: "zero amount", debits: []Posting{p("a", 0)}, credits: []Posting{p("b", 0)}, wantErr: ErrInvalidAmount},
		{name: "negative amount", debits: []Posting{p("a", -5)}, credits: []Posting{p("b", -5)}, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostings(tt.debits, tt.credits)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEntrySignedAndBalanced(t *testing.T) {
	debit := &Entry{Direction: Debit, Amount: NewAmount(25)}
	credit := &Entry{Direction: Credit, Amount: NewAmount(25)}

	assert.True(t, debit.Signed().Equal(NewAmount(-25)))
	assert.True(t, credit.Signed().Equal(NewAmount(25)))
	assert.True(t, EntriesBalanced([]*Entry{debit, credit}))
	assert.False(t, EntriesBalanced([]*Entry{debit}))
	assert.False(t, EntriesBalanced([]*Entry{debit, {Direction: Credit, Amount: NewAmount(24)}}))
}

func TestTransactionReversible(t *testing.T) {
	assert.True(t, (&Transaction{Kind: TransactionKindPay}).Reversible())
	assert.False(t, (&Transaction{Kind: TransactionKindCorrection}).Reversible())
	assert.Equal(t, Credit, Debit.Opposite())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorClass
	}{
		{ErrSelfTransfer, ClassValidation},
		{fmt.Errorf("wrapped: %w", ErrInvalidDecimals), ClassValidation},
		{ErrAssetNotFound, ClassNotFound},
		{ErrDuplicateSymbol, ClassConflict},
		{&InsufficientBalanceError{}, ClassInsufficient},
		{ErrNegativeUserBalance, ClassInsufficient},
		{fmt.Errorf("%w: debits 1", ErrUnbalanced), ClassUnbalanced},
		{fmt.Errorf("%w: %w", ErrStore, errors.New("disk full")), ClassStore},
		{errors.New("boom"), ClassStore},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}

	assert.Equal(t, ErrorClass(""), Classify(nil))
	assert.True(t, IsDomainError(ErrAssetNotFound))
	assert.False(t, IsDomainError(errors.New("boom")))
}
