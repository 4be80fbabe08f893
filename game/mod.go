package game

import (
	"errors"

	"golang.org/x/exp/rand"
)

// Draw is the winner of a game that ran out of turns with equal health.
const Draw = "draw"

// PassChoice is the only choice available with an empty hand.
const PassChoice = -1

var ErrIllegalChoice = errors.New("illegal choice")

// Fingerprint identifies a board as far as one observer can tell. Boards the
// observer cannot tell apart must share a fingerprint, others must not.
type Fingerprint uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	// Player to act, "" once the game is over
	Player() string
	// Choices available to Player, empty once the game is over
	Choices() []int
	ActionSignature() ActionSignature
	ReducedView(observer string) ReducedView
	Fingerprint(observer string) Fingerprint
	Play(choice int) State
	// Determinize samples the information hidden from observer
	Determinize(observer string, rng *rand.Rand) State
	Winner() string
}

// Apply plays choice and fingerprints the resulting board for observer.
func Apply(state State, choice int, observer string) (State, Fingerprint) {
	next := state.Play(choice)
	return next, next.Fingerprint(observer)
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
