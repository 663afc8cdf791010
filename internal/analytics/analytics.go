// Package analytics aggregates item lists into the summaries behind the
// category and expiry charts.
package analytics

import (
	"time"

	"github.com/wastenot-app/wastenot/internal/expiry"
	"github.com/wastenot-app/wastenot/internal/model"
)

// Report bundles both chart summaries.
type Report struct {
	Categories map[string]int `json:"categories"`
	Expiry     map[string]int `json:"expiry"`
}

// CategoryCounts counts items per distinct category. Items with an empty
// category count under the default category.
func CategoryCounts(items []model.Item) map[string]int {
	counts := make(map[string]int)

	for _, it := range items {
		c := it.Category
		if c == "" {
			c = model.DefaultCategory
		}
		counts[c]++
	}

	return counts
}

// ExpiryBuckets counts items per analytics expiry bucket. Every bucket
// label is present in the result even when its count is zero, and the
// counts always sum to len(items).
func ExpiryBuckets(items []model.Item, now time.Time) map[string]int {
	counts := make(map[string]int, len(expiry.Labels()))
	for _, label := range expiry.Labels() {
		counts[label] = 0
	}

	for _, it := range items {
		days, ok := expiry.DaysLeftISO(now, it.Expiry)
		counts[expiry.BucketLabel(days, ok)]++
	}

	return counts
}

// BuildReport computes both summaries over the same item snapshot.
func BuildReport(items []model.Item, now time.Time) Report {
	return Report{
		Categories: CategoryCounts(items),
		Expiry:     ExpiryBuckets(items, now),
	}
}
