package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mvaldivia/calzado-store/internal/cart/domain"
)

type Store struct {
	mu    sync.Mutex
	items map[string]domain.Item
	order []string // insertion order of item ids
}

func NewStore() *Store {
	return &Store{items: make(map[string]domain.Item)}
}

func (s *Store) List() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Add merges into an existing line for the product, or creates one.
func (s *Store) Add(productID string, quantity int) domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, it := range s.items {
		if it.ProductID == productID {
			it.Quantity += quantity
			s.items[id] = it
			return it
		}
	}

	it := domain.Item{ID: uuid.NewString(), ProductID: productID, Quantity: quantity}
	s.items[it.ID] = it
	s.order = append(s.order, it.ID)
	return it
}

// SetQuantity replaces a line's quantity. A quantity of zero or less
// deletes the line, reported through deleted with a zero Item.
func (s *Store) SetQuantity(id string, quantity int) (it domain.Item, deleted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return domain.Item{}, false, domain.ErrNotFound
	}
	if quantity <= 0 {
		s.delete(id)
		return domain.Item{}, true, nil
	}
	it.Quantity = quantity
	s.items[id] = it
	return it, false, nil
}

func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	s.delete(id)
	return true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]domain.Item)
	s.order = nil
}

// Consume runs fn with the current items while holding the cart lock,
// and empties the cart only when fn succeeds. Checkout runs inside this
// so no cart mutation can slip between validation and the clear.
func (s *Store) Consume(fn func(items []domain.Item) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.snapshot()); err != nil {
		return err
	}
	s.items = make(map[string]domain.Item)
	s.order = nil
	return nil
}

func (s *Store) snapshot() []domain.Item {
	out := make([]domain.Item, 0, len(s.items))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *Store) delete(id string) {
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
