// Package money holds the decimal arithmetic used for every monetary
// comparison in the risk engine. Amounts never pass through float64.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Zero is the additive identity for amounts.
var Zero = decimal.Zero

// Parse converts a decimal string ("10000.01") into an amount.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// MustParse is Parse for constants and tests. It panics on malformed input.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Sum adds amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// AbsDiff returns |a - b|.
func AbsDiff(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Abs()
}

// IsMultipleOf reports whether a is an exact multiple of unit.
// A zero unit never matches.
func IsMultipleOf(a, unit decimal.Decimal) bool {
	if unit.IsZero() {
		return false
	}
	return a.Mod(unit).IsZero()
}

// Points converts value into whole points, one per perUnit, clamped to [0, max].
// Points(2550, 100, 100) == 25.
func Points(value, perUnit decimal.Decimal, max int) int {
	if perUnit.Sign() <= 0 || value.Sign() <= 0 {
		return 0
	}
	p := value.Div(perUnit).Floor()
	if p.GreaterThanOrEqual(decimal.NewFromInt(int64(max))) {
		return max
	}
	return int(p.IntPart())
}
