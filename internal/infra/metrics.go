package infra

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthzDecisionsTotal counts permission checks by resource, method and outcome.
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seguridad_authz_decisions_total",
			Help: "Total number of authorization decisions",
		},
		[]string{"resource", "method", "decision"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seguridad_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	GeofenceChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seguridad_geofence_checks_total",
			Help: "Location verifications by result",
		},
		[]string{"result"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seguridad_cache_requests_total",
			Help: "Cache lookups by cache name and result (hit, miss, error)",
		},
		[]string{"cache", "result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seguridad_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func RecordAuthzDecision(resource, method string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	AuthzDecisionsTotal.WithLabelValues(resource, method, decision).Inc()
}

func RecordLogin(outcome string) { LoginAttemptsTotal.WithLabelValues(outcome).Inc() }

func RecordGeofence(result string) { GeofenceChecksTotal.WithLabelValues(result).Inc() }

// ObserveHTTPRequest records one request under its route template, never the
// raw path, to keep label cardinality bounded.
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
