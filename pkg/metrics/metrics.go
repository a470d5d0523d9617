package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	CheckoutsCompleted prometheus.Counter
	CheckoutsRejected  *prometheus.CounterVec
	SalesTotal         prometheus.Counter
	StockUpdates       prometheus.Counter
	HTTPDuration       *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	completed := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_checkouts_completed_total"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "storefront_checkouts_rejected_total"}, []string{"reason"})
	sales := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_sales_soles_total"})
	stockUpdates := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_admin_stock_updates_total"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	r.MustRegister(completed, rejected, sales, stockUpdates, httpDuration)
	return &Registry{
		reg:                r,
		CheckoutsCompleted: completed,
		CheckoutsRejected:  rejected,
		SalesTotal:         sales,
		StockUpdates:       stockUpdates,
		HTTPDuration:       httpDuration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
