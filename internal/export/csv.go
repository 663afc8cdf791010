// Package export renders item lists as CSV downloads.
package export

import (
	"strings"
	"time"

	"github.com/wastenot-app/wastenot/internal/model"
)

// csvHeader is the fixed header row of an export.
var csvHeader = []string{"id", "name", "category", "storage", "expiry", "location", "createdAt"}

// CSV renders items in the export format: a header row followed by one
// row per item. Every field is double-quote-wrapped with internal quotes
// doubled, which is why this does not go through encoding/csv (that
// package only quotes fields that need it). Absent expiry renders as an
// empty string; createdAt renders as an RFC 3339 UTC timestamp.
func CSV(items []model.Item) string {
	var b strings.Builder

	writeRow(&b, csvHeader)

	for _, it := range items {
		writeRow(&b, []string{
			it.ID,
			it.Name,
			it.Category,
			it.Storage,
			it.Expiry,
			it.Location,
			time.UnixMilli(it.CreatedAt).UTC().Format(time.RFC3339),
		})
	}

	return b.String()
}

// writeRow appends one quoted CSV row.
func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
