// Package design keeps the product design being edited and the collection of saved
// designs.
package design

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/flanksource/pdfo/api"
)

var (
	// ErrNotFound indicates no saved design has the requested id
	ErrNotFound = errors.New("design not found")
	// ErrImageLimit is returned when adding an image to a design that already has the maximum
	ErrImageLimit = errors.New("a product design holds at most 4 images")
)

// Store persists saved designs
type Store interface {
	// List returns every saved design, most recently updated first
	List(ctx context.Context) ([]api.ProductDesign, error)
	Get(ctx context.Context, id string) (api.ProductDesign, error)
	// Put inserts or replaces the design with d.ID
	Put(ctx context.Context, d api.ProductDesign) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// MemoryStore is a Store that lives for the duration of the process
type MemoryStore struct {
	mu      sync.RWMutex
	designs map[string]api.ProductDesign
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{designs: map[string]api.ProductDesign{}}
}

func (m *MemoryStore) List(ctx context.Context) ([]api.ProductDesign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]api.ProductDesign, 0, len(m.designs))
	for _, d := range m.designs {
		out = append(out, d.Snapshot())
	}
	sortByUpdated(out)
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (api.ProductDesign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.designs[id]
	if !ok {
		return api.ProductDesign{}, ErrNotFound
	}
	return d.Snapshot(), nil
}

func (m *MemoryStore) Put(ctx context.Context, d api.ProductDesign) error {
	if d.ID == "" {
		return errors.New("cannot store a design without an id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.designs[d.ID] = d.Snapshot()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.designs[id]; !ok {
		return ErrNotFound
	}
	delete(m.designs, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func sortByUpdated(designs []api.ProductDesign) {
	sort.SliceStable(designs, func(i, j int) bool {
		if designs[i].UpdatedAt.Equal(designs[j].UpdatedAt) {
			return designs[i].ID < designs[j].ID
		}
		return designs[i].UpdatedAt.After(designs[j].UpdatedAt)
	})
}
