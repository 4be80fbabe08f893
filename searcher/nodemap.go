package searcher

import (
	"sync"

	"cardmcts/game"
)

// BoardNodeMap maps the fingerprints of boards to their nodes. Entries are
// never removed or overwritten, so a node returned once stays canonical for
// the rest of the search.
type BoardNodeMap struct {
	mu    sync.RWMutex
	nodes map[game.Fingerprint]*TreeNode
}

func (m *BoardNodeMap) Get(fp game.Fingerprint) (*TreeNode, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, ok := m.nodes[fp]
	return node, ok
}

// GetOrCreate returns the node installed for fp, installing the one built by
// factory if there is none. Of any number of racing callers exactly one sees
// created == true, and only that caller runs factory.
func (m *BoardNodeMap) GetOrCreate(fp game.Fingerprint, factory func() *TreeNode) (node *TreeNode, created bool) {
	if node, ok := m.Get(fp); ok {
		return node, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if node, ok := m.nodes[fp]; ok { // Lost the race to another goroutine
		return node, false
	}
	if m.nodes == nil {
		m.nodes = make(map[game.Fingerprint]*TreeNode)
	}
	node = factory()
	m.nodes[fp] = node
	return node, true
}

func (m *BoardNodeMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.nodes)
}
