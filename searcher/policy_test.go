package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(2.0, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(2.0, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + math.Sqrt(2.0*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(2.0, 100)

		require.Panics(t, func() {
			policy.evaluate(5.0, 0)
		}, "Should panic when n is 0")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		// More parent visits -> higher exploration
		policy1 := newUCT(2.0, 100)
		policy2 := newUCT(2.0, 1000)
		rewards := 5.0
		visits := 10.0

		score1 := policy1.evaluate(rewards, visits)
		score2 := policy2.evaluate(rewards, visits)

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		// More child visits -> lower exploration
		policy := newUCT(2.0, 100)
		rewards := 5.0

		score1 := policy.evaluate(rewards, 10)
		score2 := policy.evaluate(rewards, 20)

		require.Greater(t, score1, score2,
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		policy := newUCT(2.0, 100)
		visits := 10.0

		score1 := policy.evaluate(5.0, visits)
		score2 := policy.evaluate(10.0, visits)

		require.Greater(t, score2, score1,
			"More rewards should increase exploitation term")
	})
}

// visitedNode returns a node whose edges already carry the given stats.
func visitedNode(visits int, edges map[int][2]float64) *TreeNode {
	node := newTreeNode("player1", 0, 0)
	node.stats.visits = visits
	for choice, s := range edges {
		edge := node.Edge(choice)
		edge.stats.rewards = s[0]
		edge.stats.visits = int(s[1])
	}
	return node
}

func TestSelectChoice(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("prefers choices never tried", func(t *testing.T) {
		node := visitedNode(4, map[int][2]float64{1: {4, 4}, 2: {0, 0}})

		for i := 0; i < 20; i++ {
			got := selectChoice(node, []int{1, 2, 3}, CSquared, rng)
			require.Contains(t, []int{2, 3}, got, "Should pick an unvisited or missing edge")
		}
	})

	t.Run("picks max UCT among visited choices", func(t *testing.T) {
		node := visitedNode(10, map[int][2]float64{1: {3, 5}, 2: {-1, 5}})

		require.Equal(t, 1, selectChoice(node, []int{1, 2}, CSquared, rng))
	})

	t.Run("ignores edges illegal on this board", func(t *testing.T) {
		node := visitedNode(20, map[int][2]float64{1: {0, 5}, 2: {-2, 5}, 3: {10, 10}})

		require.Equal(t, 1, selectChoice(node, []int{1, 2}, CSquared, rng),
			"Edge 3 has the best stats but is not a legal choice")
	})

	t.Run("tolerates a node lagging its edges", func(t *testing.T) {
		node := visitedNode(0, map[int][2]float64{1: {1, 1}})

		require.NotPanics(t, func() {
			selectChoice(node, []int{1}, CSquared, rng)
		})
	})
}
