package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prosto_admin",
			Name:      "http_requests_total",
			Help:      "Count of HTTP API requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	scheduleResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prosto_admin",
			Name:      "schedule_resolutions_total",
			Help:      "Count of working-hours resolutions by outcome.",
		},
		[]string{"outcome"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prosto_admin",
			Name:      "hours_cache_lookups_total",
			Help:      "Count of working-hours cache lookups by result.",
		},
		[]string{"result"},
	)

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prosto_admin",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, scheduleResolutions, cacheLookups, bookingCreated)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncResolution records one resolution outcome, "open" or "closed".
func IncResolution(outcome string) {
	scheduleResolutions.WithLabelValues(outcome).Inc()
}

// IncCacheLookup records one cache lookup result, "hit" or "miss".
func IncCacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}
