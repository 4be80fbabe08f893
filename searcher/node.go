package searcher

import (
	"slices"
	"sync"

	"cardmcts/game"
)

// stats are the aggregated rewards and visits of a node or an edge.
type stats struct {
	mu      sync.Mutex
	rewards float64
	visits  int
}

func (s *stats) update(reward float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rewards += reward
	s.visits++
}

// load returns a consistent snapshot
func (s *stats) load() (rewards float64, visits int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rewards, s.visits
}

func (s *stats) Visits() int {
	_, visits := s.load()
	return visits
}

// Edge is one choice out of a node. Its rewards are from the perspective of
// the player making the choice.
type Edge struct {
	choice int
	stats  stats
}

func newEdge(choice int) *Edge {
	return &Edge{choice: choice}
}

func (e *Edge) Choice() int {
	return e.choice
}

func (e *Edge) Visits() int {
	return e.stats.Visits()
}

// TreeNode is one abstracted information state. Determinizations that the
// observer cannot tell apart share a node. Its rewards are from the
// perspective of the player to act.
type TreeNode struct {
	player      string // "" at a terminal board
	depth       int    // Depth at creation, nodes may be reached at other depths
	fingerprint game.Fingerprint
	stats       stats
	guard       ConsistencyGuard
	leading     LeadingEdgeSet

	mu    sync.RWMutex
	edges map[int]*Edge
}

func newTreeNode(player string, depth int, fp game.Fingerprint) *TreeNode {
	return &TreeNode{
		player:      player,
		depth:       depth,
		fingerprint: fp,
		edges:       make(map[int]*Edge),
	}
}

func (n *TreeNode) Player() string {
	return n.player
}

func (n *TreeNode) Fingerprint() game.Fingerprint {
	return n.fingerprint
}

func (n *TreeNode) Visits() int {
	return n.stats.Visits()
}

// Leading returns the ways into n.
func (n *TreeNode) Leading() *LeadingEdgeSet {
	return &n.leading
}

// Edge returns the edge for choice, adding it if n has none yet.
func (n *TreeNode) Edge(choice int) *Edge {
	if edge, ok := n.FindEdge(choice); ok {
		return edge
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	edge, ok := n.edges[choice]
	if !ok {
		edge = newEdge(choice)
		n.edges[choice] = edge
	}
	return edge
}

func (n *TreeNode) FindEdge(choice int) (*Edge, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	edge, ok := n.edges[choice]
	return edge, ok
}

// Edges returns a snapshot of n's edges ordered by choice.
func (n *TreeNode) Edges() []*Edge {
	n.mu.RLock()
	edges := make([]*Edge, 0, len(n.edges))
	for _, edge := range n.edges {
		edges = append(edges, edge)
	}
	n.mu.RUnlock()

	slices.SortFunc(edges, func(a, b *Edge) int { return a.choice - b.choice })
	return edges
}

// Policy returns the visits of every visited choice out of n.
func (n *TreeNode) Policy() map[int]float64 {
	policy := make(map[int]float64)
	for _, edge := range n.Edges() {
		if visits := edge.Visits(); visits > 0 {
			policy[edge.choice] = float64(visits)
		}
	}
	return policy
}
