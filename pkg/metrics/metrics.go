package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlaylistResolutions counts which cascade stage produced a playlist URL.
	PlaylistResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherbeats_playlist_resolutions_total",
			Help: "Playlist resolutions by the stage that produced the URL",
		},
		[]string{"stage"}, // "search", "category", "featured", "default"
	)

	// CredentialRefreshes counts token exchanges against the auth endpoint.
	CredentialRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherbeats_credential_refreshes_total",
			Help: "Credential exchanges by outcome",
		},
		[]string{"outcome"},
	)

	// UpstreamRequestDuration tracks latency of outbound calls.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherbeats_upstream_request_duration_seconds",
			Help:    "Duration of outbound requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream", "operation"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weatherbeats_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// HTTPRequests counts served API requests.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherbeats_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveUpstream records the duration of an outbound call started at start.
func ObserveUpstream(upstream, operation string, start time.Time) {
	UpstreamRequestDuration.WithLabelValues(upstream, operation).Observe(time.Since(start).Seconds())
}

// RecordHTTPRequest increments the request counter for a served route.
func RecordHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
