package domain

import (
	"errors"
	"math"

	"github.com/shopspring/decimal" // Exact decimal parsing
)

// AmountDecimals is the number of minor-unit digits in one native unit
const AmountDecimals = 9

// Unit is one whole native unit expressed in minor units
const Unit Amount = 1_000_000_000

// Amount is a value in integer minor units
type Amount int64

// ParseAmount parses a decimal string such as "1.0" or "0.5" into minor units.
// Values with more precision than AmountDecimals, negative values and values
// that overflow are rejected.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &InvalidAmountError{Input: s}
	}
	minor := d.Shift(AmountDecimals)
	if !minor.IsInteger() || minor.IsNegative() {
		return 0, &InvalidAmountError{Input: s}
	}
	if minor.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, &InvalidAmountError{Input: s}
	}
	return Amount(minor.IntPart()), nil
}

// MustParseAmount is ParseAmount for constants; it panics on bad input
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal returns the amount in whole units
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -AmountDecimals)
}

// String renders the amount in whole units, e.g. "0.5"
func (a Amount) String() string {
	return a.Decimal().String()
}

var errAmountOverflow = errors.New("amount overflows balance")

// Add returns a+b, failing instead of wrapping around
func (a Amount) Add(b Amount) (Amount, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, errAmountOverflow
	}
	return a + b, nil
}
