package domain

import (
	"time"

	"github.com/mvaldivia/calzado-store/internal/money"
)

type Status string

// Only pending is ever produced here; fulfilment happens outside this
// system.
const StatusPending Status = "pending"

// Order is an immutable record of a completed checkout.
type Order struct {
	ID            string       `json:"id"`
	Total         money.Amount `json:"total"`
	PaymentMethod string       `json:"paymentMethod"`
	Status        Status       `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}
