package query

import (
	"math"
	"strconv"
	"strings"
)

// Round rounds x to places decimals from its exact binary value, so 2.675
// (stored just below the half) becomes 2.67 and exact halves go to even.
// NaN and infinities become 0 so results always serialize as JSON numbers.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', max(places, 0), 64), 64)
	if err != nil {
		return 0
	}
	return v
}

// Round2 rounds to two decimals, the default precision of every response.
func Round2(x float64) float64 { return Round(x, 2) }

// Decade floors a year to its decade.
func Decade(year int) int {
	if year < 0 {
		return -((-year + 9) / 10 * 10)
	}
	return year / 10 * 10
}

// FirstToken returns the first whitespace-separated token of s.
func FirstToken(s string) (string, bool) {
	f := strings.Fields(s)
	if len(f) == 0 {
		return "", false
	}
	return f[0], true
}

// LastToken returns the last whitespace-separated token of s.
func LastToken(s string) (string, bool) {
	f := strings.Fields(s)
	if len(f) == 0 {
		return "", false
	}
	return f[len(f)-1], true
}

// SplitList splits a comma-separated multi-value cell ("A, B,C") into
// trimmed, non-empty parts.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
