package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FlightsCreated      prometheus.Counter
	AvailabilityPatches prometheus.Counter
	DetailLookups       prometheus.Counter
	DetailCacheHits     prometheus.Counter
	LookupDuration      prometheus.Histogram
	ErrorsCount         *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FlightsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_created_total",
			Help:      "The total number of flight records created",
		}),
		AvailabilityPatches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_patches_total",
			Help:      "The total number of availability patches applied",
		}),
		DetailLookups: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_lookups_total",
			Help:      "The total number of provider detail lookups",
		}),
		DetailCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_cache_hits_total",
			Help:      "The total number of detail lookups served from cache",
		}),
		LookupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "detail_lookup_duration_seconds",
			Help:      "Time taken by provider detail lookups",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
