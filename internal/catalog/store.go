// Package catalog recomputes the visible product subset from the full
// in-memory dataset and an explicit filter/sort/page state, derives display
// badges, and drives the per-view command dispatcher.
package catalog

import (
	"log/slog"
	"sync"

	"github.com/terra-clan/product-catalog/internal/models"
	"github.com/terra-clan/product-catalog/internal/storage"
)

// Store holds the full in-memory dataset for the lifetime of the process.
// It is loaded once at startup and reloaded after a successful import; all
// further catalog computation is pure and needs no file I/O.
type Store struct {
	mu       sync.RWMutex
	dir      string
	products []models.Product
	format   storage.Format
}

// NewStore creates a store reading from the given data directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads the dataset: JSON preferred, CSV fallback, empty catalog when
// neither file exists. A malformed payload is an error; the catalog simply
// does not populate.
func (s *Store) Load() error {
	products, format, err := storage.ReadDataset(s.dir)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.products = products
	s.format = format
	s.mu.Unlock()

	slog.Info("dataset loaded", "count", len(products), "format", format, "dir", s.dir)
	return nil
}

// Products returns a copy of the full dataset in source order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Categories returns the distinct categories in dataset order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(s.products))
	var categories []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Count returns the number of products in the dataset.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Format reports which dataset file the last load consulted.
func (s *Store) Format() storage.Format {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.format
}
