// Package money converts user-entered amounts and rates into exact integer
// cents and basis points, and back. Everything downstream of this package
// works on integers only; decimals appear again at the output boundary.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToCents parses an arbitrary user-entered amount string into integer cents.
// Currency symbols, thousands separators, and percent signs are stripped.
// A leading minus or an accounting-style "(...)" wrapper marks the value
// negative. Malformed or empty input yields 0, never an error.
func ToCents(raw string) int64 {
	intPart, fracPart, neg := splitAmount(raw)
	if intPart == "" && fracPart == "" {
		return 0
	}

	whole := int64(0)
	if intPart != "" {
		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0
		}
		whole = n
	}

	frac, err := strconv.ParseInt(padFraction(fracPart), 10, 64)
	if err != nil {
		return 0
	}

	cents := whole*100 + frac
	if neg {
		cents = -cents
	}
	return cents
}

// ToBasisPoints parses a percentage string into integer basis points
// (1 bp = 0.01%), e.g. "5.25%" -> 525. Same tolerance rules as ToCents.
func ToBasisPoints(raw string) int64 {
	return ToCents(raw)
}

// FloatToCents rounds a dollar amount to the nearest cent using standard
// rounding (half away from zero), not banker's rounding.
func FloatToCents(dollars float64) int64 {
	return roundHalfAway(dollars * 100)
}

// FloatToBasisPoints rounds a percentage to the nearest basis point.
func FloatToBasisPoints(pct float64) int64 {
	return roundHalfAway(pct * 100)
}

// FromCents converts integer cents to a decimal dollar amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FromBasisPoints converts integer basis points to a decimal percentage.
func FromBasisPoints(bps int64) decimal.Decimal {
	return decimal.New(bps, -2)
}

// MonthlyInterest returns one month of interest in cents for a balance at an
// annual rate in basis points: round(balance * apr / 120000). Non-positive
// balances or rates accrue nothing.
func MonthlyInterest(balanceCents, aprBps int64) int64 {
	if balanceCents <= 0 || aprBps <= 0 {
		return 0
	}
	return (balanceCents*aprBps + 60000) / 120000
}

// splitAmount strips everything but digits, dots, minus, and parentheses,
// determines the sign, and splits on the first dot. Text after a second dot
// is discarded — "most recently typed" tolerance for partial input.
func splitAmount(raw string) (intPart, fracPart string, neg bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '(', r == ')':
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return "", "", false
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
	}
	s = strings.Trim(s, "()")
	if strings.HasPrefix(s, "-") {
		neg = true
	}
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")

	parts := strings.Split(s, ".")
	intPart = parts[0]
	if len(parts) > 1 {
		fracPart = parts[1]
	}
	return intPart, fracPart, neg
}

// padFraction right-pads or truncates a fractional string to exactly two
// digits.
func padFraction(frac string) string {
	for len(frac) < 2 {
		frac += "0"
	}
	return frac[:2]
}

func roundHalfAway(v float64) int64 {
	if v >= 0 {
		return int64(v + 0.5)
	}
	return int64(v - 0.5)
}
