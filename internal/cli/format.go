// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pfennig-app/pfennig/internal/money"
)

// FormatCents formats integer cents as a dollar string with comma grouping.
// e.g., 123456 -> "$1,234.56", -950 -> "-$9.50"
func FormatCents(cents int64) string {
	if cents < 0 {
		return "-" + FormatCents(-cents)
	}

	s := money.FromCents(cents).StringFixed(2)
	dot := strings.IndexByte(s, '.')
	return "$" + groupThousands(s[:dot]) + s[dot:]
}

// FormatBps formats integer basis points as a percentage.
// e.g., 2499 -> "24.99%", 400 -> "4.00%"
func FormatBps(bps int64) string {
	return money.FromBasisPoints(bps).StringFixed(2) + "%"
}

// FormatMonths formats a month count as a years-and-months horizon.
// e.g., 1 -> "1mo", 14 -> "1y 2mo", 361 -> "30y+"
func FormatMonths(months int) string {
	if months <= 0 {
		return "0mo"
	}
	if months > 360 {
		return "30y+"
	}

	years := months / 12
	rem := months % 12
	switch {
	case years == 0:
		return fmt.Sprintf("%dmo", rem)
	case rem == 0:
		return fmt.Sprintf("%dy", years)
	default:
		return fmt.Sprintf("%dy %dmo", years, rem)
	}
}

// FormatDate formats a date for display, e.g. "Mon, Jun 9 2025".
func FormatDate(t time.Time) string {
	return t.Format("Mon, Jan 2 2006")
}

// FormatDelta formats a cent delta with an explicit sign.
func FormatDelta(currentCents, previousCents int64) string {
	delta := currentCents - previousCents
	if delta >= 0 {
		return "+" + FormatCents(delta)
	}
	return "-" + FormatCents(-delta)
}

// FormatYears formats a fractional year count, e.g. 12.34 -> "12.3 years".
func FormatYears(years float64) string {
	return fmt.Sprintf("%.1f years", years)
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupThousands(strconv.FormatInt(n, 10))
}
