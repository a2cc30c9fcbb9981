package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxDecimals is the largest precision an asset may declare.
const MaxDecimals = 18

// Amount is a quantity of an asset counted in its smallest unit,
// 10^-decimals of one whole coin. It is always an integer.
type Amount struct {
	units decimal.Decimal
}

// NewAmount builds an Amount from a count of smallest units.
func NewAmount(units int64) Amount {
	return Amount{units: decimal.NewFromInt(units)}
}

// AmountFromUnits builds an Amount from an integral decimal.
func AmountFromUnits(units decimal.Decimal) (Amount, error) {
	if !units.Equal(units.Truncate(0)) {
		return Amount{}, fmt.Errorf("%w: %s is not a whole number of units", ErrInvalidAmount, units)
	}
	return Amount{units: normalize(units)}, nil
}

// AmountFromMajor converts a human amount (e.g. 12.345 GOLD) into units,
// dropping any precision beyond decimals (rounding toward zero).
func AmountFromMajor(major decimal.Decimal, decimals int32) Amount {
	return Amount{units: normalize(major.Shift(decimals).Truncate(0))}
}

// ParseAmount parses a human amount string for an asset with the given decimals.
func ParseAmount(s string, decimals int32) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return AmountFromMajor(d, decimals), nil
}

// ParseUnits parses a string holding a whole number of units.
func ParseUnits(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return AmountFromUnits(d)
}

func normalize(d decimal.Decimal) decimal.Decimal {
	return decimal.NewFromBigInt(d.BigInt(), 0)
}

// Units returns the raw unit count.
func (a Amount) Units() decimal.Decimal {
	return a.units
}

func (a Amount) Add(b Amount) Amount {
	return Amount{units: a.units.Add(b.units)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{units: a.units.Sub(b.units)}
}

func (a Amount) Neg() Amount {
	return Amount{units: a.units.Neg()}
}

func (a Amount) Cmp(b Amount) int {
	return a.units.Cmp(b.units)
}

func (a Amount) Equal(b Amount) bool {
	return a.units.Equal(b.units)
}

func (a Amount) IsZero() bool {
	return a.units.IsZero()
}

func (a Amount) IsPositive() bool {
	return a.units.IsPositive()
}

func (a Amount) IsNegative() bool {
	return a.units.IsNegative()
}

// Major converts units back to whole coins.
func (a Amount) Major(decimals int32) decimal.Decimal {
	return a.units.Shift(-decimals)
}

// Format renders the amount with exactly decimals fractional digits.
func (a Amount) Format(decimals int32) string {
	return a.Major(decimals).StringFixed(decimals)
}

// String returns the unit count.
func (a Amount) String() string {
	return a.units.String()
}

// MarshalJSON encodes the unit count as a JSON string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.units.String())
}

// UnmarshalJSON accepts a unit count encoded as a JSON string or number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := AmountFromUnits(d)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// SumAmounts adds up amounts.
func SumAmounts(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
