package queue

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mholtz/cabfetch/internal/models"
	"github.com/mholtz/cabfetch/internal/utils"
)

// Store is the file-backed repository for the queue. Every save rewrites the
// whole file with the complete queue; that full-overwrite semantic is the
// consistency guarantee, there are no incremental updates.
type Store struct {
	path string
}

// NewStore creates a store persisting to path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the storage file location
func (s *Store) Path() string {
	return s.path
}

// Load reads all items from the storage file in stored order. A missing file
// yields an empty queue.
func (s *Store) Load() ([]models.QueueItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &models.CabFetchError{
			Type: models.ErrFileOp,
			Item: s.path,
			Err:  fmt.Errorf("failed to read queue file: %w", err),
		}
	}

	var items []models.QueueItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &models.CabFetchError{
			Type: models.ErrFileOp,
			Item: s.path,
			Err:  fmt.Errorf("failed to parse queue file: %w", err),
		}
	}
	return items, nil
}

// Save writes the complete item list to the storage file
func (s *Store) Save(items []models.QueueItem) error {
	if items == nil {
		items = []models.QueueItem{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return &models.CabFetchError{Type: models.ErrFileOp, Item: s.path, Err: err}
	}

	if err := utils.WriteFile(s.path, data, 0644); err != nil {
		return &models.CabFetchError{
			Type: models.ErrFileOp,
			Item: s.path,
			Err:  fmt.Errorf("failed to write queue file: %w", err),
		}
	}
	return nil
}
