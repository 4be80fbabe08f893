package searcher

import (
	"errors"
	"fmt"

	"cardmcts/game"
)

// ErrTreeInconsistency means a playout reached a node whose recorded board or
// decision disagrees with the playout's board. The playout is discarded.
var ErrTreeInconsistency = errors.New("tree inconsistency")

var ErrGameOver = errors.New("game is over")

type InconsistencyKind int

const (
	BoardMismatch InconsistencyKind = iota
	ActionMismatch
)

func (k InconsistencyKind) String() string {
	switch k {
	case BoardMismatch:
		return "board_mismatch"
	case ActionMismatch:
		return "action_mismatch"
	default:
		return "unknown"
	}
}

type InconsistencyError struct {
	Kind        InconsistencyKind
	Depth       int
	Fingerprint game.Fingerprint
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%s: %s at depth %d (fingerprint %016x)", ErrTreeInconsistency, e.Kind, e.Depth, uint64(e.Fingerprint))
}

func (e *InconsistencyError) Unwrap() error {
	return ErrTreeInconsistency
}
