package testutil

import (
	"context"
	"sync"

	ierr "github.com/flexcart/flexcart/internal/errors"
)

// InMemoryStore provides a generic, thread-safe in-memory key-value store
// preserving insertion order, used as the base for repository test doubles.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]T),
	}
}

func (s *InMemoryStore[T]) Create(_ context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("item with id %s already exists", id).
			Mark(ierr.ErrAlreadyExists)
	}
	s.items[id] = item
	s.order = append(s.order, id)
	return nil
}

func (s *InMemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		var zero T
		return zero, ierr.NewErrorf("item with id %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return item, nil
}

// List returns items matching the filter in insertion order. A nil filter
// matches everything.
func (s *InMemoryStore[T]) List(_ context.Context, filter func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []T
	for _, id := range s.order {
		item := s.items[id]
		if filter == nil || filter(item) {
			result = append(result, item)
		}
	}
	return result
}

func (s *InMemoryStore[T]) Update(_ context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ierr.NewErrorf("item with id %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	s.items[id] = item
	return nil
}

func (s *InMemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ierr.NewErrorf("item with id %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes all items
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
	s.order = nil
}

type storeState[T any] struct {
	items map[string]T
	order []string
}

// Snapshot captures the store's current contents. Stored items are never
// mutated in place (Create and Update insert fresh copies), so a shallow copy
// of the map is a consistent snapshot.
func (s *InMemoryStore[T]) Snapshot() interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make(map[string]T, len(s.items))
	for id, item := range s.items {
		items[id] = item
	}
	order := make([]string, len(s.order))
	copy(order, s.order)
	return &storeState[T]{items: items, order: order}
}

// Restore replaces the store's contents with a previously taken snapshot
func (s *InMemoryStore[T]) Restore(snapshot interface{}) {
	state, ok := snapshot.(*storeState[T])
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = state.items
	s.order = state.order
}
