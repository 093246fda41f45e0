// Package compare maintains the bounded product selection a user compares
// side by side, persisted through a pluggable key-value port so the set
// survives reloads independently of the dataset.
package compare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// MaxItems is the compare set capacity.
const MaxItems = 4

// StorageKey is the fixed key the identifier list is persisted under.
const StorageKey = "compareList"

// ErrFull is returned when an add would exceed the capacity. The set stays
// unchanged; the message is the user-visible capacity warning.
var ErrFull = errors.New("Можно сравнить не более 4 товаров одновременно!")

// Store is the persistence port the set writes through: a key-value surface
// with get/set/remove, injectable for testing with an in-memory stand-in.
// Get returns nil bytes for an absent key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Set is the bounded, ordered compare selection. Every mutation persists the
// full identifier list immediately.
type Set struct {
	mu    sync.Mutex
	store Store
	key   string
	ids   []int
}

// NewSet loads the persisted selection under key; an absent entry means an
// empty set.
func NewSet(ctx context.Context, store Store, key string) (*Set, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load compare set: %w", err)
	}

	s := &Set{store: store, key: key}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.ids); err != nil {
			return nil, fmt.Errorf("corrupt compare set under %q: %w", key, err)
		}
	}
	if len(s.ids) > MaxItems {
		s.ids = s.ids[:MaxItems]
	}
	return s, nil
}

// Toggle flips membership of id: a present id is removed, an absent one is
// added unless the set is already at capacity, in which case ErrFull is
// returned and nothing changes. Returns whether the id ended up in the set.
func (s *Set) Toggle(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false, s.persist(ctx)
	}
	if len(s.ids) >= MaxItems {
		return false, ErrFull
	}
	s.ids = append(s.ids, id)
	return true, s.persist(ctx)
}

// Clear empties the set and removes the persisted entry.
func (s *Set) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	if err := s.store.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear compare set: %w", err)
	}
	return nil
}

// IDs returns the selected product identifiers in insertion order.
func (s *Set) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Contains reports membership of id.
func (s *Set) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.ids, id)
}

// Len returns the current size.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// persist writes the full list. Callers hold s.mu.
func (s *Set) persist(ctx context.Context) error {
	ids := s.ids
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode compare set: %w", err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to persist compare set: %w", err)
	}
	return nil
}
