package searcher

import "sync"

// LeadingEdge is one way into a node: the edge taken out of parent.
type LeadingEdge struct {
	Parent *TreeNode
	Edge   *Edge
}

// LeadingEdgeSet holds every (parent, edge) pair a node has been reached by.
type LeadingEdgeSet struct {
	mu    sync.RWMutex
	edges map[LeadingEdge]struct{}
}

// Add records a way into the node. Adding a pair twice has no effect.
func (s *LeadingEdgeSet) Add(parent *TreeNode, edge *Edge) {
	if parent == nil || edge == nil {
		panic("leading edge needs a parent and an edge")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.edges == nil {
		s.edges = make(map[LeadingEdge]struct{})
	}
	s.edges[LeadingEdge{Parent: parent, Edge: edge}] = struct{}{}
}

// ForEach visits a snapshot of the set in no particular order until visit
// returns false. visit runs without the set's lock held, so it may call Add.
func (s *LeadingEdgeSet) ForEach(visit func(parent *TreeNode, edge *Edge) bool) {
	for _, item := range s.snapshot() {
		if !visit(item.Parent, item.Edge) {
			return
		}
	}
}

func (s *LeadingEdgeSet) snapshot() []LeadingEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]LeadingEdge, 0, len(s.edges))
	for item := range s.edges {
		items = append(items, item)
	}
	return items
}

func (s *LeadingEdgeSet) Contains(parent *TreeNode, edge *Edge) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.edges[LeadingEdge{Parent: parent, Edge: edge}]
	return ok
}

func (s *LeadingEdgeSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.edges)
}

func (s *LeadingEdgeSet) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.edges = nil
}
