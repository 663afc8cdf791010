// Package suggest provides default shelf-life and storage suggestions
// inferred from an item's name.
package suggest

import (
	"strings"
	"time"

	"github.com/wastenot-app/wastenot/internal/model"
)

// Suggestion is a default shelf-life/storage pairing. It is offered to the
// caller, never applied automatically.
type Suggestion struct {
	// Days is the suggested shelf life in days.
	Days int `json:"days"`
	// Storage is the suggested storage place.
	Storage string `json:"storage"`
}

// table maps a lowercase name token to its suggestion.
var table = map[string]Suggestion{
	"milk":   {Days: 7, Storage: "Fridge"},
	"bread":  {Days: 3, Storage: "Room Temp"},
	"apple":  {Days: 14, Storage: "Fridge"},
	"eggs":   {Days: 21, Storage: "Fridge"},
	"cheese": {Days: 14, Storage: "Fridge"},
	"yogurt": {Days: 10, Storage: "Fridge"},
}

// Lookup finds the suggestion for an item name. Only the first
// whitespace-delimited token of the trimmed, lowercased name is consulted.
// ok is false when the table has no entry for the token.
func Lookup(name string) (Suggestion, bool) {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return Suggestion{}, false
	}

	s, ok := table[fields[0]]
	return s, ok
}

// ProposedExpiry returns the concrete expiry date implied by the
// suggestion, today plus the shelf life, as an ISO-8601 date string.
func (s Suggestion) ProposedExpiry(now time.Time) string {
	return now.AddDate(0, 0, s.Days).Format(model.ExpiryLayout)
}
