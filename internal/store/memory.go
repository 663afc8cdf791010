package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wastenot-app/wastenot/internal/model"
)

// MemoryStore implements Store with in-memory storage. It is used in tests
// and when no data file is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]model.Item
}

// NewMemoryStore creates a new MemoryStore instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]model.Item),
	}
}

// List returns a snapshot of all items.
func (s *MemoryStore) List(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}

	return items, nil
}

// Get retrieves an item by its ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	if id == "" {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, ErrNotFound
	}

	return &item, nil
}

// Create adds a new item to the store and returns the stored item with
// its generated ID and creation time.
func (s *MemoryStore) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	newItem, err := newStoredItem(item)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[newItem.ID] = *newItem

	return newItem, nil
}

// Delete removes an item by ID, reporting whether it was present.
func (s *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	if id == "" {
		return false, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return false, nil
	}

	delete(s.items, id)

	return true, nil
}

// newStoredItem validates the input and builds the record that will be
// persisted: fresh UUID, creation timestamp in epoch milliseconds, trimmed
// name, and category/storage defaults.
func newStoredItem(item *model.Item) (*model.Item, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	newItem := model.Item{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(item.Name),
		Category:  item.Category,
		Storage:   item.Storage,
		Expiry:    item.Expiry,
		Location:  item.Location,
		CreatedAt: time.Now().UnixMilli(),
	}

	if newItem.Category == "" {
		newItem.Category = model.DefaultCategory
	}
	if newItem.Storage == "" {
		newItem.Storage = model.DefaultStorage
	}

	return &newItem, nil
}
