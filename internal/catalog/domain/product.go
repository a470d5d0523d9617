package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvaldivia/calzado-store/internal/money"
)

type Category string

const (
	CategoryHombres Category = "hombres"
	CategoryMujeres Category = "mujeres"
	CategoryUnisex  Category = "unisex"
)

// Product is a sellable catalog entry. Stock is the only field that
// changes after seeding; SKUs are unique across the catalog.
type Product struct {
	ID       string       `json:"id"`
	SKU      string       `json:"sku"`
	Name     string       `json:"name"`
	Price    money.Amount `json:"price"`
	Stock    int          `json:"stock"`
	Image    string       `json:"image"`
	Category Category     `json:"category"`
}

// ErrNotFound reports an unknown product id.
var ErrNotFound = errors.New("product not found")

// Demand is one product's requested quantity in a reservation.
type Demand struct {
	ProductID string
	Quantity  int
}

// Line is a reserved demand together with the product as it was at the
// moment the reservation committed.
type Line struct {
	Product  Product
	Quantity int
}

// InsufficientStockError names every product whose demanded quantity
// exceeded its stock. The reservation as a whole was rejected.
type InsufficientStockError struct {
	Names []string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %s", strings.Join(e.Names, ", "))
}

// ProductNotFoundError reports a demand for a product id that is not in
// the catalog.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}
