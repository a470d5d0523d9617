package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldivia/calzado-store/internal/catalog/domain"
	"github.com/mvaldivia/calzado-store/internal/money"
)

func product(sku string, price string, stock int) domain.Product {
	return domain.Product{
		SKU:      sku,
		Name:     "Producto " + sku,
		Price:    money.Require(price),
		Stock:    stock,
		Category: domain.CategoryUnisex,
	}
}

func TestSeed_LoadsLaunchCatalog(t *testing.T) {
	t.Parallel()

	s := NewStore()
	Seed(s)

	products := s.List()
	require.Len(t, products, 5)
	skus := make([]string, 0, len(products))
	for _, p := range products {
		require.NotEmpty(t, p.ID)
		require.GreaterOrEqual(t, p.Stock, 0)
		skus = append(skus, p.SKU)
	}
	assert.Equal(t, []string{"BOT-002", "FOR-003", "MOC-001", "SAN-004", "SNE-005"}, skus)
}

func TestSetStock_ReplacesStockAndReportsPrevious(t *testing.T) {
	t.Parallel()

	s := NewStore()
	p := s.Add(product("MOC-001", "150.00", 12))

	updated, prev, err := s.SetStock(p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, 12, prev)

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, 3, got.Stock)

	// The reported previous value is the one this call replaced, not a
	// read from before the swap.
	_, prev, err = s.SetStock(p.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, prev)
}

func TestSetStock_UnknownID(t *testing.T) {
	t.Parallel()

	s := NewStore()
	_, _, err := s.SetStock("missing", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserve_DecrementsAllLines(t *testing.T) {
	t.Parallel()

	s := NewStore()
	a := s.Add(product("A", "150.00", 3))
	b := s.Add(product("B", "90.00", 1))

	lines, err := s.Reserve([]domain.Demand{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	gotA, _ := s.Get(a.ID)
	gotB, _ := s.Get(b.ID)
	assert.Equal(t, 1, gotA.Stock)
	assert.Equal(t, 0, gotB.Stock)
}

func TestReserve_RejectsWholeBatchOnShortfall(t *testing.T) {
	t.Parallel()

	s := NewStore()
	a := s.Add(product("A", "150.00", 1))
	b := s.Add(product("B", "90.00", 5))
	c := s.Add(product("C", "60.00", 0))

	_, err := s.Reserve([]domain.Demand{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 1},
		{ProductID: c.ID, Quantity: 1},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.ElementsMatch(t, []string{a.Name, c.Name}, insufficient.Names)

	// No partial decrement, including for the line that had stock.
	gotA, _ := s.Get(a.ID)
	gotB, _ := s.Get(b.ID)
	gotC, _ := s.Get(c.ID)
	assert.Equal(t, 1, gotA.Stock)
	assert.Equal(t, 5, gotB.Stock)
	assert.Equal(t, 0, gotC.Stock)
}

func TestReserve_UnknownProduct(t *testing.T) {
	t.Parallel()

	s := NewStore()
	a := s.Add(product("A", "150.00", 3))

	_, err := s.Reserve([]domain.Demand{
		{ProductID: a.ID, Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	})

	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.ProductID)

	gotA, _ := s.Get(a.ID)
	assert.Equal(t, 3, gotA.Stock)
}

// Concurrent reservations of the same unit must never oversell: with
// stock 1, exactly one of N racing reservations wins.
func TestReserve_ConcurrentNoOversell(t *testing.T) {
	t.Parallel()

	s := NewStore()
	p := s.Add(product("A", "150.00", 1))

	const racers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Reserve([]domain.Demand{{ProductID: p.ID, Quantity: 1}}); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	got, _ := s.Get(p.ID)
	assert.Equal(t, 0, got.Stock)
}
