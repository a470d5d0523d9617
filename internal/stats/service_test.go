package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/mvaldivia/calzado-store/internal/catalog/domain"
	catalogmem "github.com/mvaldivia/calzado-store/internal/catalog/memory"
	"github.com/mvaldivia/calzado-store/internal/money"
	ordermem "github.com/mvaldivia/calzado-store/internal/order/memory"
)

func addProduct(s *catalogmem.Store, sku string, stock int) {
	s.Add(catalogdomain.Product{
		SKU:      sku,
		Name:     sku,
		Price:    money.Require("100.00"),
		Stock:    stock,
		Category: catalogdomain.CategoryUnisex,
	})
}

func TestCompute_EmptyStoresYieldZeroValues(t *testing.T) {
	t.Parallel()

	svc := NewService(catalogmem.NewStore(), ordermem.NewLedger())
	st := svc.Compute()

	assert.True(t, st.TotalSales.IsZero())
	assert.Zero(t, st.OrdersPending)
	assert.Zero(t, st.LowStockAlerts)
}

func TestCompute_SumsOrdersAndCountsPending(t *testing.T) {
	t.Parallel()

	catalog := catalogmem.NewStore()
	ledger := ordermem.NewLedger()
	ledger.Append(decimal.RequireFromString("150.00"), "yape")
	ledger.Append(decimal.RequireFromString("220.50"), "efectivo")

	st := NewService(catalog, ledger).Compute()

	assert.True(t, st.TotalSales.Equal(decimal.RequireFromString("370.50")), "total %s", st.TotalSales)
	assert.Equal(t, 2, st.OrdersPending)
}

func TestCompute_LowStockThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	catalog := catalogmem.NewStore()
	addProduct(catalog, "AT-5", 5) // at the threshold: no alert
	addProduct(catalog, "BELOW-4", 4)
	addProduct(catalog, "ZERO", 0)
	addProduct(catalog, "FULL", 20)

	st := NewService(catalog, ordermem.NewLedger()).Compute()
	assert.Equal(t, 2, st.LowStockAlerts)
}

func TestCompute_IsPure(t *testing.T) {
	t.Parallel()

	catalog := catalogmem.NewStore()
	addProduct(catalog, "BELOW-3", 3)
	ledger := ordermem.NewLedger()
	ledger.Append(decimal.RequireFromString("99.90"), "tarjeta")

	svc := NewService(catalog, ledger)
	first := svc.Compute()
	second := svc.Compute()

	require.True(t, first.TotalSales.Equal(second.TotalSales.Decimal))
	assert.Equal(t, first.OrdersPending, second.OrdersPending)
	assert.Equal(t, first.LowStockAlerts, second.LowStockAlerts)
}
