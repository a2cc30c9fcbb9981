package postgres

import (
	"errors"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/vcledger/internal/domain"
)

// PostgreSQL error codes and constraint names the repositories translate.
const (
	pgErrUniqueViolation = "23505"
	pgErrCheckViolation  = "23514"

	constraintAssetSymbol       = "assets_tenant_symbol_key"
	constraintReversesID        = "transactions_reverses_id_key"
	constraintUserBalanceNonNeg = "accounts_user_balance_non_negative"
)

// mapError translates driver errors into domain errors. notFound is returned
// for pgx.ErrNoRows; everything unrecognized passes through unchanged.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgErrUniqueViolation && pgErr.ConstraintName == constraintAssetSymbol:
			return domain.ErrDuplicateSymbol
		case pgErr.Code == pgErrUniqueViolation && pgErr.ConstraintName == constraintReversesID:
			return domain.ErrAlreadyReversed
		case pgErr.Code == pgErrCheckViolation && pgErr.ConstraintName == constraintUserBalanceNonNeg:
			return domain.ErrNegativeUserBalance
		}
	}

	return err
}

func amountToNumeric(a domain.Amount) pgtype.Numeric {
	return pgtype.Numeric{Int: a.Units().BigInt(), Exp: 0, Valid: true}
}

func numericToAmount(n pgtype.Numeric) (domain.Amount, error) {
	if !n.Valid || n.Int == nil {
		return domain.Amount{}, nil
	}

	return domain.AmountFromUnits(decimal.NewFromBigInt(new(big.Int).Set(n.Int), n.Exp))
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgTimestamptzToPtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

func stringPtrToText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func textToStringPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
