// Package query filters, searches, and sorts item lists by stored and
// derived fields.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wastenot-app/wastenot/internal/expiry"
	"github.com/wastenot-app/wastenot/internal/model"
)

// Filter constrains an item list. Zero-value fields apply no constraint.
type Filter struct {
	// Search is a case-insensitive substring match against the item name.
	Search string
	// Category is an exact match against the item category.
	Category string
	// Storage is an exact match against the item storage place.
	Storage string
}

// SortKey selects the ordering of a listing.
type SortKey string

// Supported sort keys.
const (
	SortNewest     SortKey = "newest"
	SortExpirySoon SortKey = "expirySoon"
	SortName       SortKey = "name"
)

// noExpiryRank sorts items without a tracked expiry after everything else.
const noExpiryRank = 1 << 30

// ParseSortKey normalizes a client-supplied sort parameter. The legacy
// "daysLeft" value is an alias of "expirySoon"; anything unrecognized
// falls back to the default newest-first ordering.
func ParseSortKey(s string) SortKey {
	switch s {
	case string(SortExpirySoon), "daysLeft":
		return SortExpirySoon
	case string(SortName):
		return SortName
	default:
		return SortNewest
	}
}

// Apply filters and sorts items, returning a new slice. The input is never
// modified. All sorts are stable: ties keep the order the store returned.
func Apply(items []model.Item, f Filter, key SortKey, now time.Time) []model.Item {
	out := make([]model.Item, 0, len(items))

	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, it := range items {
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Storage != "" && it.Storage != f.Storage {
			continue
		}
		out = append(out, it)
	}

	sortItems(out, key, now)

	return out
}

// sortItems orders items in place by the given key.
func sortItems(items []model.Item, key SortKey, now time.Time) {
	switch key {
	case SortExpirySoon:
		sort.SliceStable(items, func(a, b int) bool {
			return expiryRank(&items[a], now) < expiryRank(&items[b], now)
		})
	case SortName:
		c := collate.New(language.Und, collate.Loose)
		sort.SliceStable(items, func(a, b int) bool {
			return c.CompareString(items[a].Name, items[b].Name) < 0
		})
	default:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].CreatedAt > items[b].CreatedAt
		})
	}
}

// expiryRank returns the sort rank for the expirySoon ordering: the
// days-left count, or a large sentinel for untracked expiry.
func expiryRank(it *model.Item, now time.Time) int {
	if days, ok := expiry.DaysLeftISO(now, it.Expiry); ok {
		return days
	}
	return noExpiryRank
}

// Facets lists the distinct categories and storage places present in the
// items, each sorted ascending. The original UI uses these to populate
// its filter dropdowns.
type Facets struct {
	Categories []string `json:"categories"`
	Storages   []string `json:"storages"`
}

// CollectFacets builds the Facets of an item list.
func CollectFacets(items []model.Item) Facets {
	catSet := make(map[string]struct{})
	storSet := make(map[string]struct{})

	for _, it := range items {
		if it.Category != "" {
			catSet[it.Category] = struct{}{}
		}
		if it.Storage != "" {
			storSet[it.Storage] = struct{}{}
		}
	}

	f := Facets{
		Categories: make([]string, 0, len(catSet)),
		Storages:   make([]string, 0, len(storSet)),
	}
	for c := range catSet {
		f.Categories = append(f.Categories, c)
	}
	for s := range storSet {
		f.Storages = append(f.Storages, s)
	}

	sort.Strings(f.Categories)
	sort.Strings(f.Storages)

	return f
}
