package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	cartdomain "github.com/mvaldivia/calzado-store/internal/cart/domain"
	catalogdomain "github.com/mvaldivia/calzado-store/internal/catalog/domain"
	orderdomain "github.com/mvaldivia/calzado-store/internal/order/domain"
)

type Catalog interface {
	Get(id string) (catalogdomain.Product, bool)
	Reserve(demands []catalogdomain.Demand) ([]catalogdomain.Line, error)
}

type Cart interface {
	Consume(fn func(items []cartdomain.Item) error) error
}

type Ledger interface {
	Append(total decimal.Decimal, paymentMethod string) orderdomain.Order
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev orderdomain.OrderPlaced) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, orderdomain.OrderPlaced) error { return nil }
