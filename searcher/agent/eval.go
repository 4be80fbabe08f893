package agent

import (
	"context"

	"cardmcts/experiments/metrics"
	"cardmcts/game"
	"cardmcts/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, state game.State, path []searcher.Segment) (int, metrics.SearchMetric, error) {
	policy, metric, err := a.mcts.Simulate(ctx, state, path)
	if err != nil {
		return 0, metric, err
	}
	return findMax(policy, state.Choices()), metric, nil
}

// findMax returns the most visited choice, the smallest on ties. A policy
// with no visits falls back to the first legal choice.
func findMax(policy map[int]float64, choices []int) int {
	maxChoice := choices[0]
	maxVisit := -1.0
	for _, choice := range choices {
		if visit, ok := policy[choice]; ok && visit > maxVisit {
			maxVisit = visit
			maxChoice = choice
		}
	}
	return maxChoice
}
