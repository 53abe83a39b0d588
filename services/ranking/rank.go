// Package ranking implements the verification boost applied to content lists.
// Verified-owner items float to the front; everything else keeps the order the
// caller supplied, which by convention is already sorted by recency.
package ranking

import "sort"

// SortByVerifiedOwner returns a copy of items reordered so that items whose
// owner is verified come first. The partition is stable: relative order inside
// the verified group and inside the unverified group is exactly the input
// order. Owners missing from verified are treated as not verified.
func SortByVerifiedOwner[T any](items []T, ownerOf func(T) string, verified map[string]bool) []T {
	out := make([]T, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		return boost(out[i], ownerOf, verified) > boost(out[j], ownerOf, verified)
	})

	return out
}

func boost[T any](item T, ownerOf func(T) string, verified map[string]bool) int {
	if verified[ownerOf(item)] {
		return 1
	}
	return 0
}
