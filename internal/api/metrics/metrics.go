// Package metrics defines and registers all custom Prometheus metrics for the
// warehouse API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on import via promauto.
// HTTP request metrics come from echoprometheus and are not declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "warehouse"

// ── Stock metrics ─────────────────────────────────────────────────────────────

// StockMutationsTotal counts stock mutations.
// Labels:
//   - operation: "receive", "pick" or "adjust"
//   - result: "ok", "insufficient", "not_found", "invalid", "duplicate" or "error"
var StockMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_mutations_total",
		Help:      "Total number of stock mutations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// StockUnitsTotal counts units moved by successful receive and pick calls.
var StockUnitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_units_total",
		Help:      "Total number of units received or picked.",
	},
	[]string{"operation"},
)

// ── Low-stock alerts ──────────────────────────────────────────────────────────

// LowStockAlertsTotal counts alerts by outcome: "handled", "failed" or "dropped".
var LowStockAlertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "low_stock_alerts_total",
		Help:      "Total number of low-stock alerts, by outcome.",
	},
	[]string{"outcome"},
)

// AlertQueueDepth tracks the number of alerts waiting in each worker channel.
var AlertQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "alert_queue_depth",
		Help:      "Current number of low-stock alerts pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Inventory gauges (refreshed by the stats job) ─────────────────────────────

var (
	InventoryProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_products",
		Help:      "Number of products in the catalog.",
	})
	InventoryUnits = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_units",
		Help:      "Total units in stock across all products.",
	})
	InventoryLowStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_low_stock_products",
		Help:      "Number of products below the low-stock threshold.",
	})
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - action: "login", "register_customer", "register_staff"
//   - result: "ok" or "failed"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and result.",
	},
	[]string{"action", "result"},
)
