package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Search pipeline collectors. Registered explicitly (no init()) so tests can
// exercise the pipeline without touching the default registry.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "searches_total",
			Help:      "Total number of search executions by outcome",
		},
		[]string{"outcome"},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "searchd",
			Name:      "search_candidates",
			Help:      "Candidates fetched from the store per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
		},
	)

	SearchRanked = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "searchd",
			Name:      "search_ranked",
			Help:      "Candidates surviving the score floor per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
		},
	)
)

// RegisterSearchMetrics registers the search collectors with the default
// registry. Call once at startup.
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchCandidates)
	prometheus.MustRegister(SearchRanked)
}
