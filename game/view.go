package game

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash"
)

// ReducedView is a board as seen by one observer. Views are immutable once
// built, and two views are equal iff everything the observer can see matches.
type ReducedView interface {
	Equal(other ReducedView) bool
	Fingerprint() Fingerprint
	String() string
}

type SideView struct {
	Health   int
	HandSize int
	DeckSize int
	Board    []Minion
}

// DuelView hides the opponent's hand and the order of both decks.
type DuelView struct {
	Observer int
	Current  int
	Phase    Phase
	Pending  int
	Turn     int
	Hand     []int // observer's own hand, sorted
	Sides    [2]SideView
	Winner   string
}

func (v DuelView) Equal(other ReducedView) bool {
	o, ok := other.(DuelView)
	if !ok {
		return false
	}
	if v.Observer != o.Observer || v.Current != o.Current || v.Phase != o.Phase ||
		v.Pending != o.Pending || v.Turn != o.Turn || v.Winner != o.Winner {
		return false
	}
	if !slices.Equal(v.Hand, o.Hand) {
		return false
	}
	for i := range v.Sides {
		a, b := v.Sides[i], o.Sides[i]
		if a.Health != b.Health || a.HandSize != b.HandSize || a.DeckSize != b.DeckSize {
			return false
		}
		if !slices.Equal(a.Board, b.Board) {
			return false
		}
	}
	return true
}

func (v DuelView) Fingerprint() Fingerprint {
	buf := make([]byte, 0, 128)
	for _, x := range []int{v.Observer, v.Current, int(v.Phase), v.Pending, v.Turn, len(v.Hand)} {
		buf = binary.AppendVarint(buf, int64(x))
	}
	for _, card := range v.Hand {
		buf = binary.AppendVarint(buf, int64(card))
	}
	for _, side := range v.Sides {
		for _, x := range []int{side.Health, side.HandSize, side.DeckSize, len(side.Board)} {
			buf = binary.AppendVarint(buf, int64(x))
		}
		for _, m := range side.Board {
			for _, x := range []int{m.Card, m.Attack, m.Health, m.Max} {
				buf = binary.AppendVarint(buf, int64(x))
			}
		}
	}
	buf = append(buf, v.Winner...)
	return Fingerprint(xxhash.Sum64(buf))
}

func (v DuelView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn=%d current=%d phase=%s pending=%d hand=%v",
		v.Turn, v.Current, v.Phase, v.Pending, v.Hand)
	for i, side := range v.Sides {
		fmt.Fprintf(&sb, " p%d{hp=%d hand=%d deck=%d board=%v}",
			i+1, side.Health, side.HandSize, side.DeckSize, side.Board)
	}
	if v.Winner != "" {
		fmt.Fprintf(&sb, " winner=%s", v.Winner)
	}
	return sb.String()
}
