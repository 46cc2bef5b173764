package related

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomePassthrough = "passthrough"
	outcomeRestricted  = "restricted"
	outcomeEmpty       = "empty"
)

var (
	RelatedScoringTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "related_scoring_total",
			Help: "Count of relatedness scoring runs by outcome.",
		},
		[]string{"outcome"},
	)

	RelatedScoringCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "related_scoring_candidates",
			Help:    "Number of products that accumulated a score in one run, before filtering.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(RelatedScoringTotal, RelatedScoringCandidates)
}
