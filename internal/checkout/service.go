// Package checkout converts the cart into an order while enforcing
// stock sufficiency. The whole sequence runs inside the cart's Consume
// section and commits stock through one catalog reservation, so a
// checkout is atomic from the caller's perspective: either every line
// is decremented, one order exists and the cart is empty, or nothing
// changed.
package checkout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	cartdomain "github.com/mvaldivia/calzado-store/internal/cart/domain"
	catalogdomain "github.com/mvaldivia/calzado-store/internal/catalog/domain"
	orderdomain "github.com/mvaldivia/calzado-store/internal/order/domain"
	"github.com/mvaldivia/calzado-store/pkg/metrics"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// ErrTotalMismatch rejects a client-declared total that disagrees
	// with the total recomputed from current catalog prices. The
	// declared value is never trusted.
	ErrTotalMismatch = errors.New("declared total does not match cart total")
)

type Service struct {
	log     *slog.Logger
	catalog Catalog
	cart    Cart
	ledger  Ledger
	events  EventPublisher
	metrics *metrics.Registry
	tracer  trace.Tracer
}

func NewService(log *slog.Logger, catalog Catalog, cart Cart, ledger Ledger, events EventPublisher, m *metrics.Registry) *Service {
	return &Service{
		log:     log,
		catalog: catalog,
		cart:    cart,
		ledger:  ledger,
		events:  events,
		metrics: m,
		tracer:  otel.Tracer("checkout"),
	}
}

// Checkout validates every cart line against current stock, decrements
// stock for all of them, appends the order and clears the cart. Any
// failure leaves stock, cart and ledger untouched.
func (s *Service) Checkout(ctx context.Context, paymentMethod string, declaredTotal decimal.Decimal) (orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "Checkout")
	defer span.End()

	var (
		order orderdomain.Order
		lines []catalogdomain.Line
	)
	err := s.cart.Consume(func(items []cartdomain.Item) error {
		if len(items) == 0 {
			return ErrEmptyCart
		}

		demands := make([]catalogdomain.Demand, 0, len(items))
		total := decimal.Zero
		for _, it := range items {
			p, ok := s.catalog.Get(it.ProductID)
			if !ok {
				return &catalogdomain.ProductNotFoundError{ProductID: it.ProductID}
			}
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
			demands = append(demands, catalogdomain.Demand{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		if !total.Equal(declaredTotal) {
			return ErrTotalMismatch
		}

		var reserveErr error
		lines, reserveErr = s.catalog.Reserve(demands)
		if reserveErr != nil {
			return reserveErr
		}

		order = s.ledger.Append(total, paymentMethod)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		s.metrics.CheckoutsRejected.WithLabelValues(rejectionReason(err)).Inc()
		return orderdomain.Order{}, err
	}

	s.metrics.CheckoutsCompleted.Inc()
	if f, _ := order.Total.Float64(); f > 0 {
		s.metrics.SalesTotal.Add(f)
	}
	s.log.Info("checkout completed",
		"order_id", order.ID,
		"total", order.Total.StringFixed(2),
		"lines", len(lines),
		"payment_method", paymentMethod,
	)

	s.publish(ctx, order, lines)
	return order, nil
}

// publish emits OrderPlaced after the commit. The order already exists;
// a publish failure must not surface to the buyer.
func (s *Service) publish(ctx context.Context, order orderdomain.Order, lines []catalogdomain.Line) {
	ev := orderdomain.OrderPlaced{
		OrderID:       order.ID,
		Total:         order.Total.StringFixed(2),
		PaymentMethod: order.PaymentMethod,
		Lines:         make([]orderdomain.EventLine, 0, len(lines)),
	}
	for _, l := range lines {
		ev.Lines = append(ev.Lines, orderdomain.EventLine{
			ProductID: l.Product.ID,
			SKU:       l.Product.SKU,
			Quantity:  l.Quantity,
		})
	}
	if err := s.events.PublishOrderPlaced(ctx, ev); err != nil {
		s.log.Error("order placed event dropped", "order_id", order.ID, "err", err)
	}
}

func rejectionReason(err error) string {
	var insufficient *catalogdomain.InsufficientStockError
	var notFound *catalogdomain.ProductNotFoundError
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrTotalMismatch):
		return "total_mismatch"
	case errors.As(err, &insufficient):
		return "insufficient_stock"
	case errors.As(err, &notFound):
		return "product_not_found"
	default:
		return "other"
	}
}
