package store

import (
	"context"
	"sync"
	"time"

	perrors "github.com/shoplite/catalog/internal/errors"
)

// inMemory implements ProductStore using an in-memory map.
// Useful for unit tests and local development without a database.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore backed by a map.
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll retrieves all products matching the filter.
func (s *inMemory) FindAll(_ context.Context, filter ListFilter) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if matches(p, filter) {
			list = append(list, p)
		}
	}
	return list, nil
}

// Create persists a new product and assigns the next sequential ID.
// IDs are not reused within the lifetime of the store.
func (s *inMemory) Create(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	product.ID = s.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	s.nextID++
	s.products[product.ID] = product

	return &product, nil
}

// Update replaces all fields of an existing product except its ID.
func (s *inMemory) Update(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[product.ID]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	s.products[product.ID] = product
	return &product, nil
}

// DeleteByID deletes a product by its ID. Absent IDs are a no-op.
func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}

// DeleteAll clears the collection. The ID sequence keeps running so IDs
// are not reused within a process lifetime.
func (s *inMemory) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[int64]Product)
	return nil
}

// matches reports whether a product satisfies every constraint of the filter.
func matches(p Product, filter ListFilter) bool {
	if filter.Name != nil && p.Name != *filter.Name {
		return false
	}
	if filter.Category != nil && p.Category != *filter.Category {
		return false
	}
	if filter.Available != nil && p.Available != *filter.Available {
		return false
	}
	return true
}
