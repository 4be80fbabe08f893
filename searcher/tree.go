package searcher

import "cardmcts/game"

// Segment is one choice made since the tree was last searched, paired with
// the fingerprint of the board it led to.
type Segment struct {
	Choice      int
	Fingerprint game.Fingerprint
}

// Outcome is the result of a playout: a score in [-1, 1] from the
// perspective of Player.
type Outcome struct {
	Player string
	Score  float64
}

func (o Outcome) rewardFor(player string) float64 {
	if player == "" { // Terminal nodes have no one to reward
		return 0
	}
	if player == o.Player {
		return o.Score
	}
	return -o.Score
}

// Step is where DescendOrExpand arrived.
type Step struct {
	Node    *TreeNode
	Board   game.State
	Created bool
}

// Tree is a DAG of the information states of one observer. Boards that the
// observer cannot tell apart share a node, and a node can be reached from
// several parents.
type Tree struct {
	observer string
	root     *TreeNode
	nodes    BoardNodeMap // Every node of the tree by fingerprint
	checks   bool
}

// NewTree builds a tree rooted at state as seen by the player to act.
func NewTree(state game.State, checks bool) *Tree {
	observer := state.Player()
	fp := state.Fingerprint(observer)
	root := newTreeNode(observer, 0, fp)
	root.guard.check(state.ReducedView(observer), signatureOf(state))
	t := &Tree{observer: observer, root: root, checks: checks}
	t.nodes.GetOrCreate(fp, func() *TreeNode { return root })
	return t
}

func (t *Tree) Root() *TreeNode {
	return t.root
}

func (t *Tree) Observer() string {
	return t.observer
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return t.nodes.Len()
}

// GetBoard returns the board recorded by the first playout to reach node.
func (t *Tree) GetBoard(node *TreeNode) game.ReducedView {
	return node.guard.Board()
}

// DescendOrExpand plays edge's choice on board and moves to the resulting
// node, creating it if no playout has reached that board yet. Boards reached
// through different edges share a node if their fingerprints match. The pair
// (parent, edge) is always recorded as a way into the node, even when the
// node turns out to be inconsistent with board.
func (t *Tree) DescendOrExpand(parent *TreeNode, edge *Edge, board game.State) (Step, error) {
	child, fp := game.Apply(board, edge.choice, t.observer)
	node, created := t.nodes.GetOrCreate(fp, func() *TreeNode {
		return newTreeNode(child.Player(), parent.depth+1, fp)
	})
	node.leading.Add(parent, edge)

	boardOK, actionOK := node.guard.check(child.ReducedView(t.observer), signatureOf(child))
	if t.checks {
		switch {
		case !boardOK:
			return Step{}, &InconsistencyError{Kind: BoardMismatch, Depth: node.depth, Fingerprint: fp}
		case !actionOK:
			return Step{}, &InconsistencyError{Kind: ActionMismatch, Depth: node.depth, Fingerprint: fp}
		}
	}
	return Step{Node: node, Board: child, Created: created}, nil
}

// Backpropagate adds outcome to node and to everything above it. Every node
// and every (parent, edge) pair reachable through leading edges is updated
// exactly once, however many paths lead to it.
func (t *Tree) Backpropagate(node *TreeNode, outcome Outcome) {
	seenNodes := map[*TreeNode]struct{}{node: {}}
	seenEdges := make(map[LeadingEdge]struct{})
	work := []*TreeNode{node}

	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]

		current.stats.update(outcome.rewardFor(current.player))
		current.leading.ForEach(func(parent *TreeNode, edge *Edge) bool {
			key := LeadingEdge{Parent: parent, Edge: edge}
			if _, ok := seenEdges[key]; !ok {
				seenEdges[key] = struct{}{}
				edge.stats.update(outcome.rewardFor(parent.player))
			}
			if _, ok := seenNodes[parent]; !ok {
				seenNodes[parent] = struct{}{}
				work = append(work, parent)
			}
			return true
		})
	}
}

// Advance re-roots the tree at the node reached by following path from the
// root, if every step of path has been expanded and the node matches state.
func (t *Tree) Advance(path []Segment, state game.State) bool {
	if state.Player() != t.observer {
		return false
	}

	node := t.root
	for _, segment := range path {
		edge, ok := node.FindEdge(segment.Choice)
		if !ok { // Node has not expanded this choice
			return false
		}
		child, ok := t.nodes.Get(segment.Fingerprint)
		if !ok || !child.leading.Contains(node, edge) {
			return false
		}
		node = child
	}
	if node.fingerprint != state.Fingerprint(t.observer) {
		return false
	}

	node.leading.reset()
	t.root = node
	return true
}

// signatureOf gives every finished game the same signature.
func signatureOf(board game.State) game.ActionSignature {
	if board.Winner() != "" {
		return game.TerminalSignature()
	}
	return board.ActionSignature()
}
