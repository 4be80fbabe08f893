package game

import (
	"fmt"
	"slices"
)

// ActionType represents the kind of decision a player is facing.
type ActionType int

const (
	InvalidAction ActionType = iota
	PlayCardAction
	ChooseTargetAction
	EndAction // no decision, the game is over
)

func (a ActionType) String() string {
	switch a {
	case PlayCardAction:
		return "play-card"
	case ChooseTargetAction:
		return "choose-target"
	case EndAction:
		return "end"
	default:
		return "invalid"
	}
}

// ChoiceKind is the shape of the choices of a decision.
type ChoiceKind int

const (
	Undetermined ChoiceKind = iota
	CardIDs                 // choose among card identities
	BoundedRange            // choose among 0..Bound-1
)

// ActionSignature describes the decision available at a board.
type ActionSignature struct {
	Type  ActionType
	Kind  ChoiceKind
	IDs   []int // CardIDs only
	Bound int   // BoundedRange only
}

func ChooseFromCardIDs(actionType ActionType, ids []int) ActionSignature {
	return ActionSignature{Type: actionType, Kind: CardIDs, IDs: slices.Clone(ids)}
}

func ChooseFromRange(actionType ActionType, bound int) ActionSignature {
	return ActionSignature{Type: actionType, Kind: BoundedRange, Bound: bound}
}

// TerminalSignature is the signature of a finished game.
func TerminalSignature() ActionSignature {
	return ChooseFromRange(EndAction, 0)
}

func (s ActionSignature) IsValid() bool {
	return s.Type != InvalidAction && s.Kind != Undetermined
}

// Compatible reports whether two boards believed to be the same information
// state face the same shape of decision. Card ids may differ between
// determinizations, range bounds may not.
func (s ActionSignature) Compatible(other ActionSignature) bool {
	if s.Type != other.Type || s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case CardIDs:
		return true
	case BoundedRange:
		return s.Bound == other.Bound
	default:
		return false
	}
}

// Choices enumerates the concrete choices.
func (s ActionSignature) Choices() []int {
	switch s.Kind {
	case CardIDs:
		return slices.Clone(s.IDs)
	case BoundedRange:
		choices := make([]int, s.Bound)
		for i := range choices {
			choices[i] = i
		}
		return choices
	default:
		return nil
	}
}

func (s ActionSignature) Clone() ActionSignature {
	s.IDs = slices.Clone(s.IDs)
	return s
}

func (s ActionSignature) String() string {
	switch s.Kind {
	case CardIDs:
		return fmt.Sprintf("%s:cards%v", s.Type, s.IDs)
	case BoundedRange:
		return fmt.Sprintf("%s:range(%d)", s.Type, s.Bound)
	default:
		return fmt.Sprintf("%s:undetermined", s.Type)
	}
}
