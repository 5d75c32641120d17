package sortutil

import (
	"cmp"
	"slices"
)

// ByKey returns a copy of items ordered by key. Items with equal keys keep
// their relative order and the input slice is not modified.
func ByKey[T any](items []T, key func(T) string) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
	return out
}
