package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mvaldivia/calzado-store/internal/money"
	"github.com/mvaldivia/calzado-store/internal/order/domain"
)

// Ledger is the append-only record of completed checkouts. Orders are
// never updated or removed once appended.
type Ledger struct {
	mu     sync.RWMutex
	orders []domain.Order
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(total decimal.Decimal, paymentMethod string) domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	o := domain.Order{
		ID:            uuid.NewString(),
		Total:         money.New(total),
		PaymentMethod: paymentMethod,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	l.orders = append(l.orders, o)
	return o
}

func (l *Ledger) All() []domain.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Order, len(l.orders))
	copy(out, l.orders)
	return out
}
