package searcher

import (
	"math"

	"golang.org/x/exp/rand"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const WIN = 1.0   // Reward for winning outcome
const LOSS = -WIN // Reward for loss outcome (negate from opponent perspective)

const MaxCutoff = math.MaxInt // Play out every rollout to the end of the game

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// selectChoice picks one of the choices legal on the current board. Choices
// never tried from node come first, in random order, then the max UCT edge.
func selectChoice(node *TreeNode, choices []int, cSquared float64, rng *rand.Rand) int {
	type candidate struct {
		choice  int
		rewards float64
		visits  int
	}

	candidates := make([]candidate, 0, len(choices))
	unvisited := make([]int, 0, len(choices))
	for _, choice := range choices {
		edge, ok := node.FindEdge(choice)
		if !ok {
			unvisited = append(unvisited, choice)
			continue
		}
		rewards, visits := edge.stats.load()
		if visits == 0 {
			unvisited = append(unvisited, choice)
			continue
		}
		candidates = append(candidates, candidate{choice: choice, rewards: rewards, visits: visits})
	}
	if len(unvisited) > 0 {
		return unvisited[rng.Intn(len(unvisited))]
	}

	// Edge stats are updated before the node's, so the node may lag behind
	N := max(node.Visits(), 1)
	policy := newUCT(cSquared, float64(N))
	best := candidates[0]
	bestScore := math.Inf(-1)
	for _, c := range candidates {
		if score := policy.evaluate(c.rewards, float64(c.visits)); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best.choice
}
