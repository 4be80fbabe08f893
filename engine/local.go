package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardmcts/experiments/metrics"
	"cardmcts/game"
	"cardmcts/searcher"
	"cardmcts/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type LocalEngine struct {
	State  *game.DuelState
	Agents [2]agent.Agent // By seat
}

// NewLocalEngine deals a new duel between two agents, the first one starting.
func NewLocalEngine(players [2]string, agents [2]agent.Agent, config game.Config, rng *rand.Rand) *LocalEngine {
	if players[0] == players[1] {
		panic("players need distinct names")
	}
	return &LocalEngine{
		State:  game.NewDuel(players, config, rng),
		Agents: agents,
	}
}

// Run executes the entire game loop until a winner is found.
func (e *LocalEngine) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Player(),
		StartTime:      time.Now(),
	}
	// Choices made since each player's last search, by player
	paths := make(map[string][]searcher.Segment, len(e.State.Players))
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %s is starting", e.State.Player())

	step := 1
	for e.State.Winner() == "" && step <= MaxMoves {
		player := e.State.Player()
		seat := e.State.Current

		choice, searchMetric, err := e.Agents[seat].FindMove(ctx, e.State, paths[player])
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("player %s failed to find a move at step %d: %w", player, step, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			SearchMetric: searchMetric,
		})

		next, err := e.State.PlayChoice(choice)
		if errors.Is(err, game.ErrIllegalChoice) {
			log.Warn().Err(err).Str("player", player).Msg("agent returned an illegal choice, playing the first legal one")
			choice = e.State.Choices()[0]
			next, err = e.State.PlayChoice(choice)
		}
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("failed to play choice %d: %w", choice, err)
		}

		paths[player] = nil
		for _, p := range e.State.Players {
			paths[p] = append(paths[p], searcher.Segment{Choice: choice, Fingerprint: next.Fingerprint(p)})
		}

		e.State = next
		step++
	}

	gameMetric.Winner = e.State.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if gameMetric.Winner == "" {
		log.Warn().Msgf("stopped after %d moves with no winner", MaxMoves)
	}
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}
