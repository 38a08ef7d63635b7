package drive

import (
	"sort"
	"time"
)

// recentItemLimit caps the recent-items projection after sorting.
const recentItemLimit = 10

// Project produces the display sequence for a listing: filter first, then a
// stable sort. The input slice is never mutated; callers can re-project the
// same items with different settings and get deterministic results.
func Project(items []ItemRecord, sortOption SortOption, last7DaysOnly bool, now time.Time) []ItemRecord {
	out := make([]ItemRecord, 0, len(items))
	if last7DaysOnly {
		cutoff := now.Add(-7 * 24 * time.Hour)
		for _, item := range items {
			// Missing timestamps decode as the zero time and fall out here.
			if item.LastModifiedAt.Before(cutoff) {
				continue
			}
			out = append(out, item)
		}
	} else {
		out = append(out, items...)
	}

	sortItems(out, sortOption)
	return out
}

// ProjectRecent shapes the recent-items source: non-folders only, sorted
// most-recently-modified first, truncated to the top 10.
func ProjectRecent(items []ItemRecord) []ItemRecord {
	out := make([]ItemRecord, 0, len(items))
	for _, item := range items {
		if item.IsFolder {
			continue
		}
		out = append(out, item)
	}
	sortItems(out, SortModifiedDesc)
	if len(out) > recentItemLimit {
		out = out[:recentItemLimit]
	}
	return out
}

// sortItems applies the sort option with a stable sort so that ties keep
// original fetch order.
func sortItems(items []ItemRecord, sortOption SortOption) {
	switch sortOption {
	case SortModifiedAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].LastModifiedAt.Before(items[j].LastModifiedAt)
		})
	case SortNameAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Name < items[j].Name
		})
	case SortNameDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Name > items[j].Name
		})
	default: // SortModifiedDesc
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].LastModifiedAt.After(items[j].LastModifiedAt)
		})
	}
}

// AppendDeltaPage appends a fresh delta page after the existing items. Pages
// are appended as-is: a delta feed may re-emit an item that changed twice,
// and deletion markers must pass through untouched, so no de-duplication or
// cross-page reordering happens here. The sort option applies within the new
// page only.
func AppendDeltaPage(existing []ItemRecord, page []ItemRecord, sortOption SortOption) []ItemRecord {
	sorted := make([]ItemRecord, len(page))
	copy(sorted, page)
	sortItems(sorted, sortOption)

	out := make([]ItemRecord, 0, len(existing)+len(sorted))
	out = append(out, existing...)
	out = append(out, sorted...)
	return out
}
