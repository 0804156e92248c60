// Package digest turns raw extracted items into an ordered, deduplicated
// digest: recency filter, URL dedup, cross-run seen-cache check, sort,
// truncate.
package digest

import (
	"sort"
	"time"

	"newsdigest/types"
)

// FilterRecent keeps items published at or after cutoff. Items without a
// timestamp are kept: an unknown date is assumed recent. Future-dated items
// pass too; no upper bound is applied.
func FilterRecent(items []types.Item, cutoff time.Time) []types.Item {
	kept := make([]types.Item, 0, len(items))
	for _, it := range items {
		if it.Published == nil || !it.Published.Before(cutoff) {
			kept = append(kept, it)
		}
	}
	return kept
}

// DedupeByURL keeps the first occurrence of each URL in input order. Items
// without a URL are dropped outright: they cannot be deduplicated and give
// the reader nothing to follow.
func DedupeByURL(items []types.Item) []types.Item {
	seen := make(map[string]bool, len(items))
	kept := make([]types.Item, 0, len(items))
	for _, it := range items {
		if it.URL == "" || seen[it.URL] {
			continue
		}
		seen[it.URL] = true
		kept = append(kept, it)
	}
	return kept
}

// SortByRecency orders items newest first. Items without a timestamp sort
// after all dated ones, keeping their relative input order.
func SortByRecency(items []types.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Published, items[j].Published
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
