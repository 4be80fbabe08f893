package game

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

type Phase int

const (
	PlayPhase   Phase = iota // current player picks a card from hand
	TargetPhase              // current player picks a target for the pending card
	OverPhase
)

func (p Phase) String() string {
	switch p {
	case PlayPhase:
		return "play"
	case TargetPhase:
		return "target"
	default:
		return "over"
	}
}

const (
	MaxBoard = 4 // minions per side
	MaxHand  = 6
)

type Config struct {
	StartingHealth int
	HandSize       int
	MaxTurns       int
}

func DefaultConfig() Config {
	return Config{StartingHealth: 20, HandSize: 3, MaxTurns: 40}
}

type Side struct {
	Health int
	Hand   []int // card IDs, hidden from the opponent
	Deck   []int // card IDs, next draw first, order hidden from everybody
	Board  []Minion
}

// DuelState represents the dynamic state of a two player duel.
type DuelState struct {
	Players [2]string
	Sides   [2]Side
	Current int   // Index into Players
	Phase   Phase // The current phase of the turn
	Pending int   // Card waiting for a target, -1 if none
	Turn    int
	Won     string // The winner of the game, "" if no winner yet
	Config  Config
}

// NewDuel shuffles both decks, deals the opening hands and starts the first turn.
func NewDuel(players [2]string, config Config, rng *rand.Rand) *DuelState {
	gs := &DuelState{
		Players: players,
		Pending: -1,
		Turn:    1,
		Config:  config,
	}
	for i := range gs.Sides {
		deck := StandardDeck()
		rng.Shuffle(len(deck), func(a, b int) { deck[a], deck[b] = deck[b], deck[a] })
		gs.Sides[i] = Side{Health: config.StartingHealth, Deck: deck}
		for j := 0; j < config.HandSize; j++ {
			gs.Sides[i].draw()
		}
	}
	gs.startTurn()
	return gs
}

func (gs DuelState) Copy() *DuelState {
	next := gs
	for i, side := range gs.Sides {
		next.Sides[i] = Side{
			Health: side.Health,
			Hand:   slices.Clone(side.Hand),
			Deck:   slices.Clone(side.Deck),
			Board:  slices.Clone(side.Board),
		}
	}
	return &next
}

func (gs DuelState) Player() string {
	if gs.Phase == OverPhase {
		return ""
	}
	return gs.Players[gs.Current]
}

func (gs DuelState) Winner() string {
	return gs.Won
}

func (gs DuelState) ActionSignature() ActionSignature {
	switch gs.Phase {
	case PlayPhase:
		hand := gs.Sides[gs.Current].Hand
		if len(hand) == 0 {
			return ChooseFromCardIDs(PlayCardAction, []int{PassChoice})
		}
		ids := lo.Uniq(hand)
		slices.Sort(ids)
		return ChooseFromCardIDs(PlayCardAction, ids)
	case TargetPhase:
		card := Catalog[gs.Pending]
		if card.Type == Heal {
			return ChooseFromRange(ChooseTargetAction, len(gs.Sides[gs.Current].Board)+1)
		}
		return ChooseFromRange(ChooseTargetAction, len(gs.Sides[1-gs.Current].Board)+1)
	default:
		return TerminalSignature()
	}
}

func (gs DuelState) Choices() []int {
	return gs.ActionSignature().Choices()
}

func (gs DuelState) Play(choice int) State {
	next, err := gs.PlayChoice(choice)
	if err != nil {
		panic(err)
	}
	return next
}

// PlayChoice returns the board after the current player makes choice.
// Targets index the board's minions, the last index being the hero.
func (gs DuelState) PlayChoice(choice int) (*DuelState, error) {
	if !slices.Contains(gs.Choices(), choice) {
		return nil, fmt.Errorf("%w: %d for %s", ErrIllegalChoice, choice, gs.ActionSignature())
	}

	next := gs.Copy()
	side := &next.Sides[next.Current]
	switch next.Phase {
	case PlayPhase:
		if choice == PassChoice {
			next.endTurn()
			break
		}
		i := slices.Index(side.Hand, choice)
		side.Hand = slices.Delete(side.Hand, i, i+1)
		card := Catalog[choice]
		if card.Type == Summon {
			if len(side.Board) < MaxBoard {
				side.Board = append(side.Board, newMinion(card))
			}
			next.endTurn()
			break
		}
		next.Phase = TargetPhase
		next.Pending = choice
	case TargetPhase:
		next.resolve(Catalog[next.Pending], choice)
		next.Pending = -1
		if next.Phase != OverPhase {
			next.Phase = PlayPhase
			next.endTurn()
		}
	}
	return next, nil
}

func (gs *DuelState) resolve(card Card, target int) {
	switch card.Type {
	case Strike:
		enemy := &gs.Sides[1-gs.Current]
		if target == len(enemy.Board) {
			enemy.Health -= card.Power
			break
		}
		enemy.Board[target].Health -= card.Power
		if enemy.Board[target].Health <= 0 {
			enemy.Board = slices.Delete(enemy.Board, target, target+1)
		}
	case Heal:
		own := &gs.Sides[gs.Current]
		if target == len(own.Board) {
			own.Health = min(gs.Config.StartingHealth, own.Health+card.Power)
			break
		}
		m := &own.Board[target]
		m.Health = min(m.Max, m.Health+card.Power)
	}
	gs.checkWinner()
}

func (gs *DuelState) endTurn() {
	gs.Current = 1 - gs.Current
	gs.Turn++
	if gs.Turn > gs.Config.MaxTurns {
		gs.finishByHealth()
		return
	}
	gs.startTurn()
}

// startTurn lets the current player's minions hit the enemy hero, then draws.
func (gs *DuelState) startTurn() {
	own := &gs.Sides[gs.Current]
	damage := lo.SumBy(own.Board, func(m Minion) int { return m.Attack })
	gs.Sides[1-gs.Current].Health -= damage
	gs.checkWinner()
	if gs.Phase == OverPhase {
		return
	}
	if len(own.Hand) < MaxHand {
		own.draw()
	}
}

func (gs *DuelState) checkWinner() {
	for i, side := range gs.Sides {
		if side.Health <= 0 {
			gs.Won = gs.Players[1-i]
			gs.Phase = OverPhase
			return
		}
	}
}

func (gs *DuelState) finishByHealth() {
	gs.Phase = OverPhase
	switch a, b := gs.Sides[0].Health, gs.Sides[1].Health; {
	case a > b:
		gs.Won = gs.Players[0]
	case b > a:
		gs.Won = gs.Players[1]
	default:
		gs.Won = Draw
	}
}

func (s *Side) draw() {
	if len(s.Deck) == 0 {
		return
	}
	s.Hand = append(s.Hand, s.Deck[0])
	s.Deck = s.Deck[1:]
}

// index returns the seat of player, -1 for a spectator.
func (gs DuelState) index(player string) int {
	return lo.IndexOf(gs.Players[:], player)
}

func (gs DuelState) ReducedView(observer string) ReducedView {
	ob := gs.index(observer)
	view := DuelView{
		Observer: ob,
		Current:  gs.Current,
		Phase:    gs.Phase,
		Pending:  gs.Pending,
		Turn:     gs.Turn,
		Winner:   gs.Won,
	}
	if ob >= 0 {
		view.Hand = slices.Clone(gs.Sides[ob].Hand)
		slices.Sort(view.Hand)
	}
	for i, side := range gs.Sides {
		view.Sides[i] = SideView{
			Health:   side.Health,
			HandSize: len(side.Hand),
			DeckSize: len(side.Deck),
			Board:    slices.Clone(side.Board),
		}
	}
	return view
}

func (gs DuelState) Fingerprint(observer string) Fingerprint {
	return gs.ReducedView(observer).Fingerprint()
}

// Determinize reshuffles both decks and redeals the hands observer cannot see.
func (gs DuelState) Determinize(observer string, rng *rand.Rand) State {
	next := gs.Copy()
	ob := next.index(observer)
	for i := range next.Sides {
		side := &next.Sides[i]
		if i == ob {
			rng.Shuffle(len(side.Deck), func(a, b int) { side.Deck[a], side.Deck[b] = side.Deck[b], side.Deck[a] })
			continue
		}
		pool := append(slices.Clone(side.Hand), side.Deck...)
		rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
		side.Hand = pool[:len(side.Hand):len(side.Hand)]
		side.Deck = pool[len(side.Hand):]
	}
	return next
}
