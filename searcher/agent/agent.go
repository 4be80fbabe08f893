package agent

import (
	"context"

	"cardmcts/experiments/metrics"
	"cardmcts/game"
	"cardmcts/searcher"
)

type Agent interface {
	// FindMove returns a choice and search metrics (if collected) from the simulation process
	FindMove(ctx context.Context, state game.State, path []searcher.Segment) (int, metrics.SearchMetric, error)
}
