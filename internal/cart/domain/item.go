package domain

import "errors"

// Item is one pending cart line. The cart holds at most one Item per
// product; repeated adds merge by summing quantities.
//
// The cart is process-global: there is no per-customer scoping in the
// external API, so all clients share it. That matches the storefront's
// single-administrator deployment but would need session scoping before
// serving independent customers.
type Item struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// ErrNotFound reports an unknown cart item id.
var ErrNotFound = errors.New("cart item not found")
