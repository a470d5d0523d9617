// Package stats derives the admin dashboard figures by scanning the
// ledger and catalog on every request. No caching: at this catalog size
// a full scan is cheaper than keeping counters consistent.
package stats

import (
	"github.com/shopspring/decimal"

	catalogdomain "github.com/mvaldivia/calzado-store/internal/catalog/domain"
	"github.com/mvaldivia/calzado-store/internal/money"
	orderdomain "github.com/mvaldivia/calzado-store/internal/order/domain"
)

// LowStockThreshold is the stock level below which a product counts as
// a low-stock alert.
const LowStockThreshold = 5

type AdminStats struct {
	TotalSales     money.Amount `json:"totalSales"`
	OrdersPending  int          `json:"ordersPending"`
	LowStockAlerts int          `json:"lowStockAlerts"`
}

type CatalogReader interface {
	List() []catalogdomain.Product
}

type LedgerReader interface {
	All() []orderdomain.Order
}

type Service struct {
	catalog CatalogReader
	ledger  LedgerReader
}

func NewService(catalog CatalogReader, ledger LedgerReader) *Service {
	return &Service{catalog: catalog, ledger: ledger}
}

// Compute is a pure function of current store contents; empty stores
// yield zero values.
func (s *Service) Compute() AdminStats {
	st := AdminStats{}
	total := decimal.Zero
	for _, o := range s.ledger.All() {
		total = total.Add(o.Total.Decimal)
		if o.Status == orderdomain.StatusPending {
			st.OrdersPending++
		}
	}
	st.TotalSales = money.New(total)
	for _, p := range s.catalog.List() {
		if p.Stock < LowStockThreshold {
			st.LowStockAlerts++
		}
	}
	return st
}
