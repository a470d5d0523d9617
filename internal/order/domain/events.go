package domain

// OrderPlaced is emitted after a checkout commits. Line summaries carry
// quantities only; totals are on the order.
type OrderPlaced struct {
	OrderID       string      `json:"orderId"`
	Total         string      `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
	Lines         []EventLine `json:"lines"`
}

type EventLine struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
}
