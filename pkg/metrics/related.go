package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the related products HTTP handler
	RelatedRequestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "related_products_request_latency_seconds",
		Help:    "Latency of the related products handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of related product listings served, by result
	RelatedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "related_products_requests_total",
		Help: "Total number of related products requests",
	}, []string{"result"})
)

func Init() {
	prometheus.MustRegister(
		RelatedRequestLatency,
		RelatedRequests,
	)
}
