package game

import "github.com/samber/lo"

// EvaluateHealth compares hero health to produce a score between -1 and 1 from the current player's perspective
func EvaluateHealth(s State) float64 {
	gs := asDuel(s)
	own, enemy := gs.sides()
	return normalize(float64(max(own.Health, 0)), float64(max(enemy.Health, 0)))
}

// EvaluateBoard considers each player's minions and cards in hand, in addition to hero health, to produce a score between -1 and 1 from the current player's perspective
func EvaluateBoard(s State) float64 {
	gs := asDuel(s)
	own, enemy := gs.sides()
	healthScore := EvaluateHealth(s)
	boardScore := normalize(boardPower(own), boardPower(enemy))
	handScore := normalize(float64(len(own.Hand)), float64(len(enemy.Hand)))

	return (2*healthScore + 2*boardScore + handScore) / 5
}

func asDuel(s State) *DuelState {
	gs, ok := s.(*DuelState)
	if !ok {
		panic("unexpected state type")
	}
	return gs
}

func (gs *DuelState) sides() (own, enemy Side) {
	return gs.Sides[gs.Current], gs.Sides[1-gs.Current]
}

// boardPower weighs attack over health since attack hits the hero every turn
func boardPower(side Side) float64 {
	return lo.SumBy(side.Board, func(m Minion) float64 {
		return 2*float64(m.Attack) + float64(m.Health)
	})
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
