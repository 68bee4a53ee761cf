package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Purchase kinds.
const (
	KindSingle = "single"
	KindBulk   = "bulk"
)

// Purchase outcomes.
const (
	OutcomeCommitted    = "committed"
	OutcomeRejected     = "rejected"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

// Recorder owns the service registry and every instrument exported on /metrics.
// A nil Recorder drops all observations.
type Recorder struct {
	registry *prometheus.Registry

	purchases        *prometheus.CounterVec
	purchaseDuration *prometheus.HistogramVec
	itemsSold        prometheus.Counter
	lowStock         prometheus.Gauge
	outOfStock       prometheus.Gauge
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New registers the storefront instruments on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Purchase attempts by kind and outcome.",
		}, []string{"kind", "outcome"}),
		purchaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "purchase_duration_seconds",
			Help:      "Latency of purchase attempts.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"kind"}),
		itemsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_sold_total",
			Help:      "Units debited from stock by committed purchases.",
		}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_stock_products",
			Help:      "Products below the restock threshold at the last stock check.",
		}),
		outOfStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "out_of_stock_products",
			Help:      "Products with zero stock at the last stock check.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.purchases,
		r.purchaseDuration,
		r.itemsSold,
		r.lowStock,
		r.outOfStock,
		r.requests,
		r.requestDuration,
	)
	return r
}

// ObservePurchase records one purchase attempt.
func (r *Recorder) ObservePurchase(kind, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.purchases.WithLabelValues(kind, outcome).Inc()
	r.purchaseDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// AddItemsSold increases the sold units counter.
func (r *Recorder) AddItemsSold(units int) {
	if r == nil || units <= 0 {
		return
	}
	r.itemsSold.Add(float64(units))
}

// SetStockLevels publishes the latest low and out of stock counts.
func (r *Recorder) SetStockLevels(low, out int) {
	if r == nil {
		return
	}
	r.lowStock.Set(float64(low))
	r.outOfStock.Set(float64(out))
}

// ObserveRequest records a served HTTP request.
func (r *Recorder) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

