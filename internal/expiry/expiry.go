// Package expiry computes the derived temporal state of items: how many
// whole days remain until an expiry date and which urgency bucket that
// count falls into.
package expiry

import (
	"fmt"
	"time"
)

// Bucket is an urgency classification derived from a days-left count.
type Bucket string

// Urgency buckets, from most to least urgent.
const (
	BucketExpired  Bucket = "Expired"
	BucketCritical Bucket = "Critical"
	BucketSoon     Bucket = "Soon"
	BucketLater    Bucket = "Later"
	BucketSafe     Bucket = "Safe"
	BucketNoExpiry Bucket = "NoExpiry"
)

// Badge values used by the item-list view. The list view uses coarser
// boundaries than the analytics buckets: red through day 2, yellow through
// day 7, plain beyond that.
const (
	BadgeExpired = "expired"
	BadgeRed     = "red"
	BadgeYellow  = "yellow"
	BadgePlain   = "plain"
)

// Analytics bucket labels. Every item falls into exactly one.
const (
	LabelExpired  = "Expired"
	Label0to2     = "0-2d"
	Label3to7     = "3-7d"
	Label8to30    = "8-30d"
	LabelOver30   = "30+d"
	LabelNoExpiry = "No expiry"
)

// DaysLeft returns the signed count of whole calendar days between now and
// the expiry date. Both are normalized to local midnight first, so an item
// expiring later today yields 0 regardless of time of day. The result is
// negative for past expiry.
func DaysLeft(now, exp time.Time) int {
	today := midnight(now)
	expDay := midnight(exp)

	diff := expDay.Sub(today)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}

	return days
}

// DaysLeftISO computes DaysLeft from an ISO-8601 date string. The second
// return value is false when no expiry is tracked (empty string) or the
// value does not parse.
func DaysLeftISO(now time.Time, iso string) (int, bool) {
	if iso == "" {
		return 0, false
	}

	exp, err := time.ParseInLocation("2006-01-02", iso, now.Location())
	if err != nil {
		return 0, false
	}

	return DaysLeft(now, exp), true
}

// Classify maps a days-left count to its urgency bucket. Callers handle
// the no-expiry case themselves; this function is total over integers.
func Classify(days int) Bucket {
	switch {
	case days < 0:
		return BucketExpired
	case days <= 2:
		return BucketCritical
	case days <= 7:
		return BucketSoon
	case days <= 30:
		return BucketLater
	default:
		return BucketSafe
	}
}

// Badge maps a days-left count to the list-view badge color.
func Badge(days int) string {
	switch {
	case days < 0:
		return BadgeExpired
	case days <= 2:
		return BadgeRed
	case days <= 7:
		return BadgeYellow
	default:
		return BadgePlain
	}
}

// BucketLabel maps a days-left count to the analytics bucket label.
// ok reports whether an expiry is tracked; when false the item counts
// under "No expiry".
func BucketLabel(days int, ok bool) string {
	if !ok {
		return LabelNoExpiry
	}

	switch Classify(days) {
	case BucketExpired:
		return LabelExpired
	case BucketCritical:
		return Label0to2
	case BucketSoon:
		return Label3to7
	case BucketLater:
		return Label8to30
	default:
		return LabelOver30
	}
}

// Labels returns all analytics bucket labels in display order.
func Labels() []string {
	return []string{
		LabelExpired,
		Label0to2,
		Label3to7,
		Label8to30,
		LabelOver30,
		LabelNoExpiry,
	}
}

// FormatDaysLeft renders a days-left count the way the list view shows it,
// e.g. "3d left" or "Expired".
func FormatDaysLeft(days int) string {
	if days < 0 {
		return "Expired"
	}
	return fmt.Sprintf("%dd left", days)
}

// midnight truncates a time to 00:00:00 in its own location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
