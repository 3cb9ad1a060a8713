package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine Prometheus metrics.
var (
	IndexPassesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memdex",
			Name:      "index_passes_total",
			Help:      "Indexing passes by scope and outcome",
		},
		[]string{"scope", "status"}, // scope: "entry" / "all"
	)

	IndexDropsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "memdex",
			Name:      "index_drops_total",
			Help:      "Indexing requests dropped because a pass was already running",
		},
	)

	EntriesIndexedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "memdex",
			Name:      "entries_indexed_total",
			Help:      "Entries covered by completed indexing passes",
		},
	)

	SearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "memdex",
			Name:      "searches_total",
			Help:      "Total number of search queries",
		},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "memdex",
			Name:      "search_duration_seconds",
			Help:      "Search execution time in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "memdex",
			Name:      "search_results",
			Help:      "Results returned per search query",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		},
	)

	PersistFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "memdex",
			Name:      "persist_failures_total",
			Help:      "State snapshot writes that failed",
		},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexPassesTotal)
	prometheus.MustRegister(IndexDropsTotal)
	prometheus.MustRegister(EntriesIndexedTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(PersistFailuresTotal)
	engineMetricsRegistered = true
}

var corpusGaugesRegistered bool

// RegisterCorpusGauges exposes live corpus sizes. The callbacks run on every
// scrape and must be cheap and safe for concurrent use.
func RegisterCorpusGauges(entries, postings func() int) {
	if corpusGaugesRegistered {
		return
	}
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "memdex",
			Name:      "corpus_entries",
			Help:      "Entries currently stored",
		},
		func() float64 { return float64(entries()) },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "memdex",
			Name:      "corpus_postings",
			Help:      "Inverted index postings currently stored",
		},
		func() float64 { return float64(postings()) },
	))
	corpusGaugesRegistered = true
}
