package searcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// playoutsTotal counts finished playouts by result.
	//
	// Labels:
	//   - result: "backed_up" or "discarded"
	playoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cardmcts",
			Subsystem: "searcher",
			Name:      "playouts_total",
			Help:      "Total playouts by result",
		},
		[]string{"result"},
	)

	// inconsistenciesTotal counts playouts that disagreed with the tree.
	//
	// Labels:
	//   - kind: "board_mismatch" or "action_mismatch"
	inconsistenciesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cardmcts",
			Subsystem: "searcher",
			Name:      "tree_inconsistencies_total",
			Help:      "Total tree inconsistencies by kind",
		},
		[]string{"kind"},
	)

	nodesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cardmcts",
			Subsystem: "searcher",
			Name:      "nodes_created_total",
			Help:      "Total tree nodes created",
		},
	)

	// redirectsTotal counts descents into a node some other playout created.
	redirectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cardmcts",
			Subsystem: "searcher",
			Name:      "redirects_total",
			Help:      "Total descents into an existing node",
		},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cardmcts",
			Subsystem: "searcher",
			Name:      "search_duration_seconds",
			Help:      "Duration of one search",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
	)
)
