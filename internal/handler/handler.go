// Package handler provides HTTP request handlers for the API.
package handler

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// DeleteResponse reports the outcome of a delete request. Deleting an
// unknown ID is not an error, so the flag is how callers learn whether
// anything was removed.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// ScanRequest carries a decoded QR/barcode payload for bulk-add.
type ScanRequest struct {
	Payload string `json:"payload"`
}

// SuggestionResponse is the suggestion offered for an item name, with the
// concrete expiry date it implies. The caller decides whether to apply it.
type SuggestionResponse struct {
	Days           int    `json:"days"`
	Storage        string `json:"storage"`
	ProposedExpiry string `json:"proposedExpiry"`
}
