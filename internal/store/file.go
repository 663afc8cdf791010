package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/wastenot-app/wastenot/internal/model"
)

// fileData is the on-disk shape of the backing file.
type fileData struct {
	Items []model.Item `json:"items"`
}

// FileStore implements Store backed by a single JSON file. Every mutation
// is a full read-modify-write of the collection under one mutex, and the
// file is rewritten before the call returns, so a crash after a successful
// Create cannot lose the item.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	items map[string]model.Item
}

// NewFileStore opens the store at path, loading any existing collection.
// A missing, unreadable, or corrupt file is not an error: the store starts
// empty, matching the behavior of the original flat-file database.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	s := &FileStore{
		path:   path,
		logger: logger,
		items:  make(map[string]model.Item),
	}

	s.load()

	return s
}

// load reads the backing file into memory, tolerating all read failures.
func (s *FileStore) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("data file unreadable, starting empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn("data file corrupt, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return
	}

	for _, item := range data.Items {
		s.items[item.ID] = item
	}
}

// save rewrites the backing file from the in-memory collection. Callers
// must hold the mutex.
func (s *FileStore) save() error {
	data := fileData{Items: make([]model.Item, 0, len(s.items))}
	for _, item := range s.items {
		data.Items = append(data.Items, item)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&data); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}

	return nil
}

// List returns a snapshot of all items.
func (s *FileStore) List(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}

	return items, nil
}

// Get retrieves an item by its ID.
func (s *FileStore) Get(ctx context.Context, id string) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	if id == "" {
		return nil, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return nil, ErrNotFound
	}

	return &item, nil
}

// Create adds a new item and persists the collection before returning.
func (s *FileStore) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
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

	if err := s.save(); err != nil {
		// Roll back the in-memory insert so the collection matches disk.
		delete(s.items, newItem.ID)
		return nil, err
	}

	return newItem, nil
}

// Delete removes an item by ID and persists the collection. Reports
// whether a removal occurred; missing IDs are a no-op.
func (s *FileStore) Delete(ctx context.Context, id string) (bool, error) {
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

	item, exists := s.items[id]
	if !exists {
		return false, nil
	}

	delete(s.items, id)

	if err := s.save(); err != nil {
		s.items[id] = item
		return false, err
	}

	return true, nil
}
