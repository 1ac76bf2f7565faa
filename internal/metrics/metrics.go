package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted for review.",
		},
	)

	bookingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "booking_decisions_total",
			Help:      "Owner decisions by resulting status.",
		},
		[]string{"status"},
	)

	searchCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "search_cache_requests_total",
			Help:      "Item search cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingDecisions, searchCacheHits)
	})
}

// IncHTTP increments the counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncBookingCreated counts a new booking request.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingDecision counts an owner decision.
func IncBookingDecision(status string) {
	bookingDecisions.WithLabelValues(status).Inc()
}

// IncSearchCache counts a cache lookup outcome ("hit" or "miss").
func IncSearchCache(outcome string) {
	searchCacheHits.WithLabelValues(outcome).Inc()
}
