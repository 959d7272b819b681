package reconcile

import (
	"math"
	"strconv"
	"strings"
)

// Num parses a text field into a number. Empty, malformed or non-finite
// input yields 0, so a bad field never leaks NaN into computed totals.
func Num(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// OptNum parses an optional measurement field. An empty field maps to
// nil, not zero.
func OptNum(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n := Num(s)
	return &n
}

// epsilon is the gap between 1 and the next representable float64.
const epsilon = 2.220446049250313e-16

// RoundMoney rounds to the cent, half-up. The epsilon bias keeps values
// like 13.005 from landing on the wrong side of the boundary.
func RoundMoney(x float64) float64 {
	return math.Round((x+epsilon)*100) / 100
}

// Money formats a monetary amount with two decimals. Non-finite input
// renders "0.00".
func Money(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "0.00"
	}
	return strconv.FormatFloat(RoundMoney(x), 'f', 2, 64)
}

// FriendlyTime truncates a backend timestamp like
// "2026-01-11 22:29:11.860346+00" to minute granularity for display.
func FriendlyTime(s string) string {
	if s == "" {
		return "-"
	}
	if len(s) > 16 {
		return s[:16]
	}
	return s
}

// OrDash renders a display value, substituting "-" for blanks.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
