package engine

import (
	"context"

	"cardmcts/experiments/metrics"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays a game till there's a winner or a max number of moves is reached
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
