// Package format renders counts, costs, and percentages as display
// strings. All functions are pure: they never touch the numeric values
// stored on a record, so formatting can happen any number of times
// without affecting sorting or further computation.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000

	microPerCent = 10_000
)

// Tokens abbreviates a token count for display. Values of a thousand or
// more show exactly one decimal digit with a K/M/B suffix; the trailing
// ".0" is kept so column widths stay stable ("750.0K", not "750K").
func Tokens(n int64) string {
	switch {
	case n >= billion:
		return fmt.Sprintf("%.1fB", float64(n)/float64(billion))
	case n >= million:
		return fmt.Sprintf("%.1fM", float64(n)/float64(million))
	case n >= thousand:
		return fmt.Sprintf("%.1fK", float64(n)/float64(thousand))
	default:
		return strconv.FormatInt(n, 10)
	}
}

// ParseTokens reverses Tokens. Abbreviation is lossy by design, so the
// result is approximate: within 5% of the original value.
func ParseTokens(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("format: empty token string")
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'K', 'k':
		multiplier = thousand
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = million
		s = s[:len(s)-1]
	case 'B', 'b':
		multiplier = billion
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("format: parse tokens %q: %w", s, err)
	}
	return int64(math.Round(v * float64(multiplier))), nil
}

// CostMicroUSD renders a fixed-point micro-USD amount as a currency
// string with a dollar sign, thousands separators, and exactly two
// decimal places. Rounding to cents is half-up.
func CostMicroUSD(micro int64) string {
	neg := micro < 0
	if neg {
		micro = -micro
	}

	cents := (micro + microPerCent/2) / microPerCent
	dollars := cents / 100
	remainder := cents % 100

	s := fmt.Sprintf("$%s.%02d", groupThousands(dollars), remainder)
	if neg {
		return "-" + s
	}
	return s
}

// Percent renders a percentage with exactly two decimal places and a
// trailing percent sign. Display rounding is half-up: 33.333% renders
// as "33.33%" and 66.666% as "66.67%". Each value is rounded
// independently, so a column of displayed percentages may sum to
// 100.00 ± 0.01; the stored values still sum to 100 exactly.
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", roundHalfUp(p, 2))
}

// roundHalfUp rounds to the given number of decimal places with ties
// going away from zero. fmt's %.2f rounds half-even, which is the wrong
// policy here.
func roundHalfUp(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	if v < 0 {
		return -math.Floor(-v*shift+0.5) / shift
	}
	return math.Floor(v*shift+0.5) / shift
}

// groupThousands inserts commas into a non-negative integer.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
