// Package query implements the filter -> group -> aggregate -> rank -> shape
// pipeline shared by every analytical endpoint.
//
// All helpers are pure: they never modify their inputs, and for equal inputs
// they return equal outputs in the same order. Groups come out in ascending
// key order and every sort is stable, so ties keep that order.
package query

import (
	"cmp"
	"slices"
)

// Filter returns the rows for which keep reports true, in input order.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Group is one partition of rows sharing Key.
type Group[K any, T any] struct {
	Key  K
	Rows []T
}

// GroupBy partitions rows by key. Rows whose key function reports ok=false
// (a null key) are left out. Groups are returned in ascending key order and
// keep their rows in input order.
func GroupBy[T any, K cmp.Ordered](rows []T, key func(T) (K, bool)) []Group[K, T] {
	return GroupByFunc(rows, key, cmp.Compare[K])
}

// Pair is a two-column group key.
type Pair[A cmp.Ordered, B cmp.Ordered] struct {
	First  A
	Second B
}

// ComparePairs orders pairs lexicographically.
func ComparePairs[A cmp.Ordered, B cmp.Ordered](x, y Pair[A, B]) int {
	if c := cmp.Compare(x.First, y.First); c != 0 {
		return c
	}
	return cmp.Compare(x.Second, y.Second)
}

// GroupByPair partitions rows by a two-column key.
func GroupByPair[T any, A cmp.Ordered, B cmp.Ordered](rows []T, key func(T) (Pair[A, B], bool)) []Group[Pair[A, B], T] {
	return GroupByFunc(rows, key, ComparePairs[A, B])
}

// GroupByFunc partitions rows by any comparable key ordered by compare.
func GroupByFunc[T any, K comparable](rows []T, key func(T) (K, bool), compare func(a, b K) int) []Group[K, T] {
	at := make(map[K]int)
	var groups []Group[K, T]
	for _, r := range rows {
		k, ok := key(r)
		if !ok {
			continue
		}
		i, seen := at[k]
		if !seen {
			i = len(groups)
			at[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	slices.SortFunc(groups, func(a, b Group[K, T]) int { return compare(a.Key, b.Key) })
	return groups
}

// Index builds a lookup from key to group rows.
func Index[K comparable, T any](groups []Group[K, T]) map[K][]T {
	m := make(map[K][]T, len(groups))
	for _, g := range groups {
		m[g.Key] = g.Rows
	}
	return m
}

// Order compares two items for sorting.
type Order[T any] func(a, b T) int

// Asc orders items by key ascending.
func Asc[T any, K cmp.Ordered](key func(T) K) Order[T] {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// Desc orders items by key descending.
func Desc[T any, K cmp.Ordered](key func(T) K) Order[T] {
	return func(a, b T) int { return cmp.Compare(key(b), key(a)) }
}

// Sort sorts items in place by orders, applied left to right as tie-breaks.
// The sort is stable, so items equal under every order keep their position.
func Sort[T any](items []T, orders ...Order[T]) {
	slices.SortStableFunc(items, func(a, b T) int {
		for _, o := range orders {
			if c := o(a, b); c != 0 {
				return c
			}
		}
		return 0
	})
}

// Limit returns at most the first n items. A negative n drops the last -n
// items instead, and an empty result is a non-nil slice.
func Limit[T any](items []T, n int) []T {
	if n < 0 {
		n = max(len(items)+n, 0)
	}
	if n == 0 {
		return []T{}
	}
	if n >= len(items) {
		return items
	}
	return items[:n]
}

// Map projects items into their response shape. The result is never nil, so
// an empty result serializes as [] rather than null.
func Map[T any, R any](items []T, f func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}
