// Package money provides integer-cents arithmetic helpers.
// This is part of the platform layer and contains no business logic.
package money

import (
	"fmt"
	"math"
)

// ToCents converts a dollar amount to integer cents, rounding half away from
// zero. Non-finite amounts are rejected so a malformed caller-supplied total
// can never reach the payment provider.
func ToCents(dollars float64) (int64, error) {
	if math.IsNaN(dollars) || math.IsInf(dollars, 0) {
		return 0, fmt.Errorf("amount is not a finite number")
	}
	return int64(math.Round(dollars * 100)), nil
}

// Dollars converts integer cents back to a dollar amount.
func Dollars(cents int64) float64 {
	return float64(cents) / 100
}

// RoundCents rounds float cents to the nearest whole cent, half away from
// zero. Intermediate sums are kept unrounded; callers round only at the point
// a derived amount is produced.
func RoundCents(v float64) int64 {
	return int64(math.Round(v))
}

// Percent returns pct percent of the given cents amount, rounded to the
// nearest cent.
func Percent(cents int64, pct float64) int64 {
	return RoundCents(float64(cents) * pct / 100)
}

// FormatUSD renders a cents amount as a plain dollar string, e.g. "1059.30".
// Downstream logging and the lead webhook consume this form.
func FormatUSD(cents int64) string {
	return fmt.Sprintf("%.2f", Dollars(cents))
}
