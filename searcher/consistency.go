package searcher

import (
	"sync"

	"cardmcts/game"
)

// ConsistencyGuard records what the first goroutine to reach a node saw and
// checks everybody arriving later against it. The board and the signature
// are guarded by one mutex so they are established together.
type ConsistencyGuard struct {
	mu        sync.Mutex
	board     game.ReducedView
	signature game.ActionSignature
}

// SetAndCheck establishes sig if no signature has been established yet,
// otherwise reports whether sig has the same shape as the established one.
// An undetermined signature is never established and never compatible.
func (g *ConsistencyGuard) SetAndCheck(sig game.ActionSignature) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.setAndCheck(sig)
}

// CheckBoard stores view if no board has been stored yet, otherwise reports
// whether view equals the stored board.
func (g *ConsistencyGuard) CheckBoard(view game.ReducedView) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.checkBoard(view)
}

// check runs both checks as one critical section.
func (g *ConsistencyGuard) check(view game.ReducedView, sig game.ActionSignature) (boardOK, actionOK bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	boardOK = g.checkBoard(view)
	actionOK = g.setAndCheck(sig)
	return boardOK, actionOK
}

func (g *ConsistencyGuard) setAndCheck(sig game.ActionSignature) bool {
	if !sig.IsValid() {
		return false
	}
	if !g.signature.IsValid() {
		g.signature = sig.Clone()
		return true
	}
	return g.signature.Compatible(sig)
}

func (g *ConsistencyGuard) checkBoard(view game.ReducedView) bool {
	if view == nil {
		return false
	}
	if g.board == nil {
		g.board = view
		return true
	}
	return g.board.Equal(view)
}

// Board returns the board established for the node, nil if none yet.
func (g *ConsistencyGuard) Board() game.ReducedView {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board
}

func (g *ConsistencyGuard) Signature() game.ActionSignature {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.signature.Clone()
}
