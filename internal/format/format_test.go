package format

import (
	"math"
	"testing"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{999, "999"},
		{1000, "1.0K"},
		{1234, "1.2K"},
		{750_000, "750.0K"},
		{999_949, "999.9K"},
		{1_000_000, "1.0M"},
		{1_234_567, "1.2M"},
		{15_600_000, "15.6M"},
		{2_500_000_000, "2.5B"},
	}

	for _, tt := range tests {
		if got := Tokens(tt.in); got != tt.want {
			t.Errorf("Tokens(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTokens_RoundTrip(t *testing.T) {
	values := []int64{0, 7, 999, 1000, 1234, 750_000, 1_234_567, 98_765_432, 2_500_000_000}

	for _, v := range values {
		parsed, err := ParseTokens(Tokens(v))
		if err != nil {
			t.Fatalf("ParseTokens(Tokens(%d)) failed: %v", v, err)
		}

		// Abbreviation is lossy; order of magnitude must survive.
		if v == 0 {
			if parsed != 0 {
				t.Errorf("round-trip of 0 = %d", parsed)
			}
			continue
		}
		diff := math.Abs(float64(parsed-v)) / float64(v)
		if diff > 0.05 {
			t.Errorf("round-trip of %d = %d (off by %.1f%%)", v, parsed, diff*100)
		}
	}
}

func TestParseTokens_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "1.2Q"} {
		if _, err := ParseTokens(s); err == nil {
			t.Errorf("ParseTokens(%q) expected error", s)
		}
	}
}

func TestCostMicroUSD(t *testing.T) {
	tests := []struct {
		micro int64
		want  string
	}{
		{0, "$0.00"},
		{15_000, "$0.02"},   // $0.015 rounds half-up to $0.02
		{14_999, "$0.01"},   // just below the half-cent boundary
		{15_500_000, "$15.50"},
		{1_550_000, "$1.55"},
		{1_234_567_890, "$1,234.57"},
		{1_000_000_000_000, "$1,000,000.00"},
		{-15_500_000, "-$15.50"},
	}

	for _, tt := range tests {
		if got := CostMicroUSD(tt.micro); got != tt.want {
			t.Errorf("CostMicroUSD(%d) = %q, want %q", tt.micro, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00%"},
		{100, "100.00%"},
		{75, "75.00%"},
		{100.0 / 3.0, "33.33%"},
		{200.0 / 3.0, "66.67%"},
		{33.3, "33.30%"},
		{66.7, "66.70%"},
		{0.005, "0.01%"}, // half-up, not half-even
	}

	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Independently rounded display percentages may sum to 100.00 ± 0.01.
// That tolerance is the documented policy, not a defect.
func TestPercent_IndependentRoundingTolerance(t *testing.T) {
	third := 100.0 / 3.0
	if Percent(third) != "33.33%" {
		t.Fatalf("Percent(1/3) = %q", Percent(third))
	}
	// Three thirds render as 33.33 * 3 = 99.99; accepted.
	sum := 3 * 33.33
	if math.Abs(sum-100) > 0.01+1e-9 {
		t.Errorf("display sum %v outside documented tolerance", sum)
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := groupThousands(tt.in); got != tt.want {
			t.Errorf("groupThousands(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
