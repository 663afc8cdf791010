// Package model defines data structures used throughout the application.
package model

import (
	"errors"
	"strings"
	"time"
)

// Validation errors for Item.
var (
	ErrEmptyName     = errors.New("name is required")
	ErrNameTooLong   = errors.New("name cannot exceed 255 characters")
	ErrInvalidExpiry = errors.New("expiry must be an ISO-8601 date (YYYY-MM-DD)")
)

// Validation constants.
const (
	MaxNameLength = 255

	// ExpiryLayout is the wire format for expiry dates.
	ExpiryLayout = "2006-01-02"

	// DefaultCategory is assigned when an item is created without a category.
	DefaultCategory = "Other"

	// DefaultStorage is assigned when an item is created without a storage place.
	DefaultStorage = "Pantry"
)

// Item represents a tracked perishable good. Items are immutable after
// creation: there is no update operation, only create and delete.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Storage  string `json:"storage"`
	// Expiry is an ISO-8601 date string; empty means no expiry is tracked.
	Expiry   string `json:"expiry,omitempty"`
	Location string `json:"location"`
	// CreatedAt is epoch milliseconds, set once at creation.
	CreatedAt int64 `json:"createdAt"`
}

// Validate checks if the Item has valid field values.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}

	if len(i.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if i.Expiry != "" {
		if _, err := time.Parse(ExpiryLayout, i.Expiry); err != nil {
			return ErrInvalidExpiry
		}
	}

	return nil
}

// ExpiryDate parses the item's expiry. The second return value reports
// whether an expiry is tracked at all.
func (i *Item) ExpiryDate() (time.Time, bool) {
	if i.Expiry == "" {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(ExpiryLayout, i.Expiry, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// CreatedTime returns CreatedAt as a time.Time.
func (i *Item) CreatedTime() time.Time {
	return time.UnixMilli(i.CreatedAt)
}

// ItemView is the read-only item representation served to clients.
// DaysLeft and Badge are derived from Expiry on every read and are
// never persisted.
type ItemView struct {
	Item
	DaysLeft *int   `json:"daysLeft"`
	Badge    string `json:"badge,omitempty"`
}

// APIResponse is a generic wrapper for API responses.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewSuccessResponse creates a successful API response.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error API response.
func NewErrorResponse[T any](errMsg string) APIResponse[T] {
	return APIResponse[T]{
		Success: false,
		Error:   errMsg,
	}
}

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ItemEvent is a message pushed over the WebSocket connection whenever
// the inventory changes.
type ItemEvent struct {
	Type      string    `json:"type"`
	Item      *Item     `json:"item,omitempty"`
	ItemID    string    `json:"itemId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WebSocket event types.
const (
	WSEventItemCreated = "item_created"
	WSEventItemDeleted = "item_deleted"
)

// NewItemCreatedEvent creates an event announcing a newly created item.
func NewItemCreatedEvent(item *Item) ItemEvent {
	return ItemEvent{
		Type:      WSEventItemCreated,
		Item:      item,
		Timestamp: time.Now().UTC(),
	}
}

// NewItemDeletedEvent creates an event announcing a deleted item.
func NewItemDeletedEvent(id string) ItemEvent {
	return ItemEvent{
		Type:      WSEventItemDeleted,
		ItemID:    id,
		Timestamp: time.Now().UTC(),
	}
}
