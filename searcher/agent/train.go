package agent

import (
	"context"
	"math"
	"slices"

	"cardmcts/experiments/metrics"
	"cardmcts/game"
	"cardmcts/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &trainingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a *trainingAgent) FindMove(ctx context.Context, state game.State, path []searcher.Segment) (int, metrics.SearchMetric, error) {
	policy, metric, err := a.mcts.Simulate(ctx, state, path)
	if err != nil {
		return 0, metric, err
	}
	if len(policy) == 0 {
		return state.Choices()[0], metric, nil
	}
	// TODO: apply a temperature schedule as training progresses
	probabilities := adjustTemperature(policy, a.temperature)
	return sample(probabilities, a.rng.Float64()), metric, nil
}

// adjustTemperature returns choices in ascending order with their
// temperature-adjusted probabilities.
func adjustTemperature(policy map[int]float64, temperature float64) []weighted {
	// Compute temperature-adjusted choice probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]weighted, 0, len(policy))
	for choice, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted = append(adjusted, weighted{choice: choice, prob: prob})
	}
	// Normalize
	for i := range adjusted {
		adjusted[i].prob /= sum
	}
	slices.SortFunc(adjusted, func(a, b weighted) int { return a.choice - b.choice })
	return adjusted
}

type weighted struct {
	choice int
	prob   float64
}

func sample(probabilities []weighted, sampled float64) int {
	cumulative := 0.0
	for _, w := range probabilities {
		cumulative += w.prob
		if sampled < cumulative {
			return w.choice
		}
	}
	return probabilities[len(probabilities)-1].choice // Fallback in case of rounding errors
}
