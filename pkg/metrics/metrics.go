package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Planner metrics
	PlansVulcanized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rubbertree_plans_vulcanized_total",
			Help: "Total number of DNS plans produced by the vulcanizer",
		},
	)

	RecordEntriesEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rubbertree_record_entries_emitted_total",
			Help: "Total number of DNS record entries emitted across all plans",
		},
	)

	VulcanizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rubbertree_vulcanize_duration_seconds",
			Help:    "Time taken to vulcanize a lattice in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Sharder metrics
	ShardsComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rubbertree_shards_computed_total",
			Help: "Total number of shuffle shards computed by sharder kind",
		},
		[]string{"sharder"},
	)

	ShardAssignments = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rubbertree_shard_assignments_total",
			Help: "Total number of shard assignments recorded",
		},
	)

	ShardSearchBacktracks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rubbertree_shard_search_backtracks_total",
			Help: "Total number of candidate fragments rejected during stateful shard searches",
		},
	)

	// Fragment ledger metrics
	FragmentsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rubbertree_fragments_saved_total",
			Help: "Total number of fragments committed to the ledger",
		},
	)

	FragmentLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rubbertree_fragment_lookups_total",
			Help: "Total number of fragment ledger lookups by result",
		},
		[]string{"result"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(PlansVulcanized)
	prometheus.MustRegister(RecordEntriesEmitted)
	prometheus.MustRegister(VulcanizeDuration)
	prometheus.MustRegister(ShardsComputed)
	prometheus.MustRegister(ShardAssignments)
	prometheus.MustRegister(ShardSearchBacktracks)
	prometheus.MustRegister(FragmentsSaved)
	prometheus.MustRegister(FragmentLookups)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
