// Package http exposes the storefront over REST. Handlers are a thin
// translation layer: decode, validate, call the store or service, map
// the error taxonomy to a status code.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	cartdomain "github.com/mvaldivia/calzado-store/internal/cart/domain"
	cartmem "github.com/mvaldivia/calzado-store/internal/cart/memory"
	catalogdomain "github.com/mvaldivia/calzado-store/internal/catalog/domain"
	catalogmem "github.com/mvaldivia/calzado-store/internal/catalog/memory"
	"github.com/mvaldivia/calzado-store/internal/checkout"
	"github.com/mvaldivia/calzado-store/internal/stats"
	"github.com/mvaldivia/calzado-store/pkg/idempotency"
	"github.com/mvaldivia/calzado-store/pkg/metrics"
)

// outOfStockMessage is shown verbatim by the storefront UI.
const outOfStockMessage = "El stock ha cambiado. Por favor actualiza tu carrito."

type Handler struct {
	log      *slog.Logger
	catalog  *catalogmem.Store
	cart     *cartmem.Store
	checkout *checkout.Service
	stats    *stats.Service
	metrics  *metrics.Registry
	idem     idempotency.Checker
	tracer   trace.Tracer
}

func NewHandler(
	log *slog.Logger,
	catalog *catalogmem.Store,
	cart *cartmem.Store,
	co *checkout.Service,
	st *stats.Service,
	m *metrics.Registry,
	idem idempotency.Checker,
) *Handler {
	return &Handler{
		log:      log,
		catalog:  catalog,
		cart:     cart,
		checkout: co,
		stats:    st,
		metrics:  m,
		idem:     idem,
		tracer:   otel.Tracer("storefront-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.instrument)

	r.Get("/api/products", h.listProducts)
	r.Get("/api/products/{id}", h.getProduct)

	r.Get("/api/cart", h.listCart)
	r.Post("/api/cart", h.addToCart)
	r.Patch("/api/cart/{id}", h.updateCartItem)
	r.Delete("/api/cart/{id}", h.removeCartItem)

	r.With(idempotency.Middleware(h.idem, h.log)).Post("/api/checkout", h.placeOrder)

	r.Get("/api/admin/stats", h.adminStats)
	r.Patch("/api/admin/inventory/{id}", h.updateStock)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	return r
}

// cartItemJSON is a cart line joined with its product, the shape the
// storefront UI keeps in its local cache.
type cartItemJSON struct {
	cartdomain.Item
	Product *catalogdomain.Product `json:"product,omitempty"`
}

func (h *Handler) joined(it cartdomain.Item) cartItemJSON {
	out := cartItemJSON{Item: it}
	if p, ok := h.catalog.Get(it.ProductID); ok {
		out.Product = &p
	}
	return out
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	writeJSON(w, http.StatusOK, h.catalog.List())
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "GetProduct")
	defer span.End()

	p, ok := h.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) listCart(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "ListCart")
	defer span.End()

	items := h.cart.List()
	out := make([]cartItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, h.joined(it))
	}
	writeJSON(w, http.StatusOK, out)
}

type addCartReq struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "AddToCart")
	defer span.End()

	var req addCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	p, ok := h.catalog.Get(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if p.Stock < quantity {
		writeError(w, http.StatusBadRequest, "Insufficient stock")
		return
	}

	it := h.cart.Add(req.ProductID, quantity)
	writeJSON(w, http.StatusCreated, cartItemJSON{Item: it, Product: &p})
}

type updateCartReq struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "UpdateCartItem")
	defer span.End()

	var req updateCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil || *req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "Invalid quantity value")
		return
	}
	quantity := *req.Quantity

	id := chi.URLParam(r, "id")
	item, ok := h.cartItem(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Cart item not found")
		return
	}
	p, ok := h.catalog.Get(item.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if quantity > p.Stock {
		writeError(w, http.StatusBadRequest, "Insufficient stock")
		return
	}

	updated, deleted, err := h.cart.SetQuantity(id, quantity)
	if errors.Is(err, cartdomain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Cart item not found")
		return
	}
	if deleted {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "item": h.joined(updated)})
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "RemoveCartItem")
	defer span.End()

	if !h.cart.Remove(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Cart item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type checkoutReq struct {
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlaceOrder")
	defer span.End()

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PaymentMethod == "" {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	order, err := h.checkout.Checkout(ctx, req.PaymentMethod, req.Total)
	if err != nil {
		h.writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) writeCheckoutError(w http.ResponseWriter, err error) {
	var insufficient *catalogdomain.InsufficientStockError
	var notFound *catalogdomain.ProductNotFoundError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, checkout.ErrTotalMismatch):
		writeError(w, http.StatusBadRequest, "Order total does not match cart contents")
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":     "Product not found",
			"productId": notFound.ProductID,
		})
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":   "Insufficient stock for one or more items",
			"items":   insufficient.Names,
			"message": outOfStockMessage,
		})
	default:
		h.log.Error("checkout failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to create order")
	}
}

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "AdminStats")
	defer span.End()

	writeJSON(w, http.StatusOK, h.stats.Compute())
}

type updateStockReq struct {
	Stock *int `json:"stock"`
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "UpdateStock")
	defer span.End()

	var req updateStockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stock == nil || *req.Stock < 0 {
		writeError(w, http.StatusBadRequest, "Invalid stock value")
		return
	}

	p, prevStock, err := h.catalog.SetStock(chi.URLParam(r, "id"), *req.Stock)
	if errors.Is(err, catalogdomain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.metrics.StockUpdates.Inc()
	h.log.Info("admin stock update",
		"product_id", p.ID,
		"sku", p.SKU,
		"old_stock", prevStock,
		"new_stock", p.Stock,
	)
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) cartItem(id string) (cartdomain.Item, bool) {
	for _, it := range h.cart.List() {
		if it.ID == id {
			return it, true
		}
	}
	return cartdomain.Item{}, false
}
