package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dmkdok/meal-planner/internal/layout"
)

var (
	// ErrNotFound indicates no layout exists with the requested id.
	ErrNotFound = errors.New("layout not found")
	// ErrInvalidLayout indicates the provided layout violates validation rules.
	ErrInvalidLayout = errors.New("layout name must not be blank")
)

// Storage provides access to the layouts used by the calculator.
type Storage interface {
	List() ([]layout.Layout, error)
	Get(id string) (layout.Layout, error)
	Create(l layout.Layout) (layout.Layout, error)
	Update(l layout.Layout) (layout.Layout, error)
	Delete(id string) error
	Import(layouts []layout.Layout, replace bool) (int, error)
}

// Option configures MemoryStorage.
type Option func(*MemoryStorage)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *MemoryStorage) {
		s.clock = clock
	}
}

// MemoryStorage keeps layouts in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu      sync.RWMutex
	layouts map[string]layout.Layout
	clock   func() time.Time
}

// NewMemoryStorage initialises an empty storage.
func NewMemoryStorage(opts ...Option) *MemoryStorage {
	s := &MemoryStorage{
		layouts: make(map[string]layout.Layout),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns copies of all layouts ordered by creation time.
func (s *MemoryStorage) List() ([]layout.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]layout.Layout, 0, len(s.layouts))
	for _, l := range s.layouts {
		out = append(out, l.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns a copy of the layout with the given id.
func (s *MemoryStorage) Get(id string) (layout.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.layouts[id]
	if !ok {
		return layout.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l.Clone(), nil
}

// Create stores a new layout under a fresh id. Any id on the input is ignored.
func (s *MemoryStorage) Create(l layout.Layout) (layout.Layout, error) {
	normalized, err := normalize(l)
	if err != nil {
		return layout.Layout{}, err
	}

	now := s.clock()
	normalized.ID = uuid.NewString()
	normalized.CreatedAt = now
	normalized.UpdatedAt = now

	s.mu.Lock()
	s.layouts[normalized.ID] = normalized
	s.mu.Unlock()

	return normalized.Clone(), nil
}

// Update replaces the name and days of an existing layout.
func (s *MemoryStorage) Update(l layout.Layout) (layout.Layout, error) {
	normalized, err := normalize(l)
	if err != nil {
		return layout.Layout{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.layouts[l.ID]
	if !ok {
		return layout.Layout{}, fmt.Errorf("%w: %s", ErrNotFound, l.ID)
	}
	normalized.CreatedAt = existing.CreatedAt
	normalized.UpdatedAt = s.clock()
	s.layouts[l.ID] = normalized

	return normalized.Clone(), nil
}

// Delete removes the layout with the given id.
func (s *MemoryStorage) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.layouts[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.layouts, id)
	return nil
}

// Import stores the given layouts under fresh ids, optionally dropping everything stored before.
// Nothing is changed when any layout is invalid.
func (s *MemoryStorage) Import(layouts []layout.Layout, replace bool) (int, error) {
	prepared := make([]layout.Layout, 0, len(layouts))
	now := s.clock()
	for i, l := range layouts {
		normalized, err := normalize(l)
		if err != nil {
			return 0, fmt.Errorf("layout %d: %w", i, err)
		}
		normalized.ID = uuid.NewString()
		if normalized.CreatedAt.IsZero() {
			// keeps List in import order
			normalized.CreatedAt = now.Add(time.Duration(i))
		}
		normalized.UpdatedAt = now
		prepared = append(prepared, normalized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if replace {
		s.layouts = make(map[string]layout.Layout, len(prepared))
	}
	for _, l := range prepared {
		s.layouts[l.ID] = l
	}
	return len(prepared), nil
}

func normalize(l layout.Layout) (layout.Layout, error) {
	out := l.Clone()
	out.Name = strings.TrimSpace(out.Name)
	if out.Name == "" {
		return layout.Layout{}, ErrInvalidLayout
	}
	if out.Days == nil {
		out.Days = []layout.Day{}
	}
	return out, nil
}
