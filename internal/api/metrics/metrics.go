// Package metrics defines the custom Prometheus metrics of the dive log API.
// It is the single source of truth for metric names, labels, and help strings;
// the echoprometheus middleware covers the generic HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "divelog"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthzDenialsTotal counts requests rejected with 403 after the principal
// resolved.
// Label:
//   - resource: first path segment under /api/v1 (e.g. "users", "logbooks")
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of authorization denials, by resource.",
	},
	[]string{"resource"},
)

// DiveLogsCreatedTotal counts newly recorded dive logs.
var DiveLogsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dive_logs_created_total",
		Help:      "Total number of dive logs created.",
	},
)
