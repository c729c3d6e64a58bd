package metrics

import (
	"cmp"
	"errors"
	"sort"

	"golang.org/x/exp/constraints"
)

// ErrEmptyInput is returned by aggregates that are undefined on an empty table.
var ErrEmptyInput = errors.New("empty input")

type Number interface {
	constraints.Integer | constraints.Float
}

// Group is a single (key, value) pair of a grouped sum.
type Group[K cmp.Ordered, N Number] struct {
	Key   K
	Value N
}

func Total[T any, N Number](rows []T, field func(T) N) N {
	var sum N
	for _, row := range rows {
		sum += field(row)
	}
	return sum
}

func Mean[T any, N Number](rows []T, field func(T) N) (float64, error) {
	if len(rows) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, row := range rows {
		sum += float64(field(row))
	}
	return sum / float64(len(rows)), nil
}

// GroupSum sums value per distinct key. Only keys present in rows appear in
// the result.
func GroupSum[T any, K comparable, N Number](rows []T, key func(T) K, value func(T) N) map[K]N {
	groups := make(map[K]N)
	for _, row := range rows {
		groups[key(row)] += value(row)
	}
	return groups
}

// SortedGroups flattens a grouped sum into pairs ordered by key.
func SortedGroups[K cmp.Ordered, N Number](groups map[K]N) []Group[K, N] {
	out := make([]Group[K, N], 0, len(groups))
	for k, v := range groups {
		out = append(out, Group[K, N]{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ArgMaxGroup returns the key with the largest value. Ties resolve to the
// smallest key.
func ArgMaxGroup[K cmp.Ordered, N Number](groups map[K]N) (K, error) {
	return argGroup(groups, func(candidate, best N) bool { return candidate > best })
}

// ArgMinGroup returns the key with the smallest value. Ties resolve to the
// smallest key.
func ArgMinGroup[K cmp.Ordered, N Number](groups map[K]N) (K, error) {
	return argGroup(groups, func(candidate, best N) bool { return candidate < best })
}

func argGroup[K cmp.Ordered, N Number](groups map[K]N, better func(candidate, best N) bool) (K, error) {
	var zero K
	if len(groups) == 0 {
		return zero, ErrEmptyInput
	}
	sorted := SortedGroups(groups)
	best := sorted[0]
	for _, g := range sorted[1:] {
		if better(g.Value, best.Value) {
			best = g
		}
	}
	return best.Key, nil
}

// TopBy returns the n rows with the largest field value. The sort is stable so
// ties keep their original order. The input is never reordered.
func TopBy[T any, N Number](rows []T, field func(T) N, n int) ([]T, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	if n <= 0 {
		return []T{}, nil
	}
	sorted := append([]T(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return field(sorted[i]) > field(sorted[j]) })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], nil
}
