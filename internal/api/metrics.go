package api

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/erazemk/inventory/internal/store"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	inventoryOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_operations_total",
			Help: "Completed inventory changes by operation.",
		},
		[]string{"operation"},
	)
)

// stockCollector reports the stock summary at scrape time.
type stockCollector struct {
	db    *sql.DB
	items *prometheus.Desc
	units *prometheus.Desc
	value *prometheus.Desc
}

func newStockCollector(db *sql.DB) *stockCollector {
	return &stockCollector{
		db:    db,
		items: prometheus.NewDesc("inventory_items", "Number of items in the inventory.", nil, nil),
		units: prometheus.NewDesc("inventory_units_on_hand", "Total quantity on hand across all items.", nil, nil),
		value: prometheus.NewDesc("inventory_stock_value", "Sum of price times quantity across all items.", nil, nil),
	}
}

func (c *stockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.items
	ch <- c.units
	ch <- c.value
}

func (c *stockCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sum, err := store.Summarize(ctx, c.db)
	if err != nil {
		slog.Error("failed to summarize stock", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.items, prometheus.GaugeValue, float64(sum.Items))
	ch <- prometheus.MustNewConstMetric(c.units, prometheus.GaugeValue, float64(sum.Units))
	ch <- prometheus.MustNewConstMetric(c.value, prometheus.GaugeValue, sum.Value)
}

// newRegistry builds the registry served on /metrics.
func newRegistry(db *sql.DB) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		inventoryOperationsTotal,
		newStockCollector(db),
		collectors.NewGoCollector(),
	)
	return reg
}
