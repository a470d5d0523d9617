// Package memory holds the in-process stores backing the storefront.
// State lives for the lifetime of the process; every store guards its
// map with a mutex so handler goroutines never observe a half-applied
// mutation.
package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mvaldivia/calzado-store/internal/catalog/domain"
)

type Store struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewStore() *Store {
	return &Store{products: make(map[string]domain.Product)}
}

// Add inserts a product, assigning an id when none is set. Used for
// seeding at process start.
func (s *Store) Add(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.products[p.ID] = p
	return p
}

// List returns all products sorted by SKU for stable output.
func (s *Store) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

func (s *Store) Get(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok
}

// SetStock replaces a product's stock and reports the value it
// replaced, read under the same lock so audit trails cannot be skewed
// by a concurrent update. The caller validates that stock is
// non-negative; the store does not clamp.
func (s *Store) SetStock(id string, stock int) (domain.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, 0, domain.ErrNotFound
	}
	prev := p.Stock
	p.Stock = stock
	s.products[id] = p
	return p, prev, nil
}

// Reserve validates and commits a set of demands as one critical
// section. Every demand is checked against current stock before any
// decrement happens; a shortfall on any product rejects the whole
// reservation and reports all offending product names. On success each
// product's stock is decremented and the reserved lines are returned
// with the product state as of the commit.
func (s *Store) Reserve(demands []domain.Demand) ([]domain.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var short []string
	lines := make([]domain.Line, 0, len(demands))
	for _, d := range demands {
		p, ok := s.products[d.ProductID]
		if !ok {
			return nil, &domain.ProductNotFoundError{ProductID: d.ProductID}
		}
		if d.Quantity > p.Stock {
			short = append(short, p.Name)
			continue
		}
		lines = append(lines, domain.Line{Product: p, Quantity: d.Quantity})
	}
	if len(short) > 0 {
		return nil, &domain.InsufficientStockError{Names: short}
	}

	for i, l := range lines {
		p := s.products[l.Product.ID]
		p.Stock -= l.Quantity
		s.products[p.ID] = p
		lines[i].Product = p
	}
	return lines, nil
}
