package query

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// Number is any integer or float type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Count returns how many rows satisfy pred.
func Count[T any](rows []T, pred func(T) bool) int {
	n := 0
	for _, r := range rows {
		if pred(r) {
			n++
		}
	}
	return n
}

// Any reports whether at least one row satisfies pred.
func Any[T any](rows []T, pred func(T) bool) bool {
	for _, r := range rows {
		if pred(r) {
			return true
		}
	}
	return false
}

// CountDistinct returns the number of distinct non-null keys.
func CountDistinct[T any, K comparable](rows []T, key func(T) (K, bool)) int {
	seen := make(map[K]struct{})
	for _, r := range rows {
		if k, ok := key(r); ok {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// Values extracts the non-null values of a numeric field.
func Values[T any, N Number](rows []T, field func(T) (N, bool)) []N {
	out := make([]N, 0, len(rows))
	for _, r := range rows {
		if v, ok := field(r); ok {
			out = append(out, v)
		}
	}
	return out
}

// Distinct returns the distinct non-null keys in ascending order.
func Distinct[T any, K cmp.Ordered](rows []T, key func(T) (K, bool)) []K {
	seen := make(map[K]struct{})
	out := make([]K, 0)
	for _, r := range rows {
		k, ok := key(r)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Unique returns the distinct non-null keys in order of first appearance.
func Unique[T any, K comparable](rows []T, key func(T) (K, bool)) []K {
	seen := make(map[K]struct{})
	out := make([]K, 0)
	for _, r := range rows {
		k, ok := key(r)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Sum adds xs.
func Sum[N Number](xs []N) N {
	var s N
	for _, x := range xs {
		s += x
	}
	return s
}

// Mean returns the arithmetic mean, or 0 for an empty input.
func Mean[N Number](xs []N) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := 0.0
	for _, x := range xs {
		s += float64(x)
	}
	return s / float64(len(xs))
}

// Std returns the sample standard deviation (n-1 denominator). Fewer than two
// values have no sample deviation; 0 is returned.
func Std[N Number](xs []N) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := float64(x) - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// Median returns the middle value (mean of the two middle values for an even
// count), or 0 for an empty input.
func Median[N Number](xs []N) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return (float64(sorted[mid-1]) + float64(sorted[mid])) / 2
}

// Min returns the smallest value; ok is false for an empty input.
func Min[N Number](xs []N) (N, bool) {
	if len(xs) == 0 {
		var zero N
		return zero, false
	}
	return slices.Min(xs), true
}

// Max returns the largest value; ok is false for an empty input.
func Max[N Number](xs []N) (N, bool) {
	if len(xs) == 0 {
		var zero N
		return zero, false
	}
	return slices.Max(xs), true
}

// Ratio divides num by den, returning fallback when den is zero.
func Ratio[A Number, B Number](num A, den B, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return float64(num) / float64(den)
}

// Percent returns num/den*100, or 0 when den is zero.
func Percent[A Number, B Number](num A, den B) float64 {
	return Ratio(num, den, 0) * 100
}

// Pearson returns the correlation coefficient of xs and ys, or 0 when either
// series has no variance or the lengths differ.
func Pearson[N Number](xs, ys []N) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx := float64(xs[i]) - mx
		dy := float64(ys[i]) - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// Counted is a key with its occurrence count.
type Counted[K any] struct {
	Key   K
	Count int
}

// ValueCounts counts keys, most frequent first; equal counts are ordered by
// key ascending.
func ValueCounts[K cmp.Ordered](keys []K) []Counted[K] {
	counts := make(map[K]int)
	for _, k := range keys {
		counts[k]++
	}
	out := make([]Counted[K], 0, len(counts))
	for k, c := range counts {
		out = append(out, Counted[K]{Key: k, Count: c})
	}
	Sort(out,
		Desc(func(c Counted[K]) int { return c.Count }),
		Asc(func(c Counted[K]) K { return c.Key }),
	)
	return out
}
