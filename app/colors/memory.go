package colors

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps colours in a map.
type MemoryStore struct {
	mu     sync.RWMutex
	colors map[string]Color
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{colors: make(map[string]Color)}
}

func (s *MemoryStore) List(_ context.Context) ([]Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Color, 0, len(s.colors))
	for _, c := range s.colors {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, slug string) (Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.colors[slug]
	if !ok {
		return Color{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) Create(_ context.Context, c Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.colors[c.Slug]; ok {
		return ErrExists
	}
	s.colors[c.Slug] = c
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.colors[slug]; !ok {
		return ErrNotFound
	}
	delete(s.colors, slug)
	return nil
}
