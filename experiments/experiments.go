package experiments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardmcts/engine"
	"cardmcts/experiments/metrics"
	"cardmcts/game"
	"cardmcts/searcher"
	"cardmcts/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrUnknownExperiment = errors.New("unknown experiment")

// Settings are shared by every game of an experiment
type Settings struct {
	OutputDir string
	Games     int           // Per match up
	Budget    time.Duration // Search time per move
	Episodes  int           // Search episodes per move, overrides Budget
	Game      game.Config
	Seed      uint64
	Checks    bool
}

// Names lists the experiments Run knows.
var Names = []string{"parallelization", "cutoff", "throughput"}

// Run runs the named experiment and returns the directory its results were written to
func Run(ctx context.Context, name string, s Settings) (string, error) {
	switch name {
	case "parallelization":
		return RunParallelization(ctx, s)
	case "cutoff":
		return RunCutoff(ctx, s)
	case "throughput":
		return RunThroughput(ctx, s)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExperiment, name)
	}
}

func (s Settings) agent(id, goroutines, cutoff int) metrics.AgentConfig {
	config := metrics.AgentConfig{ID: id, Goroutines: goroutines, Cutoff: cutoff}
	if s.Episodes > 0 {
		config.Episodes = s.Episodes
	} else {
		config.Duration = s.Budget
	}
	return config
}

// RunParallelization pairs agents with more goroutines against the baseline sequential agent
func RunParallelization(ctx context.Context, s Settings) (string, error) {
	baseline := s.agent(0, 1, 0)
	configs := []metrics.AgentConfig{}
	matchUps := [][2]metrics.AgentConfig{}
	for i, goroutines := range []int{2, 4, 8, 16} {
		config := s.agent(i+1, goroutines, 0)
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return runExperiment(ctx, s, "parallelization", append(configs, baseline), matchUps)
}

// RunCutoff pairs a full playout agent against agents evaluating the board after a cutoff
func RunCutoff(ctx context.Context, s Settings) (string, error) {
	baseline := s.agent(0, 4, 0) // Without cutoff (full playout)
	configs := []metrics.AgentConfig{}
	matchUps := [][2]metrics.AgentConfig{}
	for i, cutoff := range []int{0, 4, 10, 20} {
		config := s.agent(i+1, baseline.Goroutines, cutoff)
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return runExperiment(ctx, s, "cutoff", append(configs, baseline), matchUps)
}

func runExperiment(ctx context.Context, s Settings, name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	seats := map[int][2]int{} // Agent IDs by game and seat
	rng := rand.New(rand.NewSource(s.Seed))

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < s.Games; i++ {
			// Alternate the starting agent
			config1, config2 := matchup[0], matchup[1]
			if i%2 == 1 {
				config1, config2 = config2, config1
			}

			winner, gameMetric, moveMetrics, err := runGame(ctx, s, config1, config2, rng)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			seats[count] = [2]int{config1.ID, config2.ID}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	summaries := metrics.SummarizeMoves(moveRecords, func(gameID int, player string) int {
		if player == players[0] {
			return seats[gameID][0]
		}
		return seats[gameID][1]
	})
	return store(s.OutputDir, name, configs, gameRecords, moveRecords, summaries)
}

// store writes experiment metadata and results
func store(outputDir, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord, summaries []metrics.Summary) (string, error) {
	writer, err := metrics.NewWriter(outputDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteSummaries(summaries); err != nil {
		return "", fmt.Errorf("failed to write summaries: %w", err)
	}
	log.Info().Str("run", writer.RunID()).Msgf("stored %s results in %s", name, writer.Dir())

	return writer.Dir(), nil
}

var players = [2]string{"player1", "player2"}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, s Settings, config1, config2 metrics.AgentConfig, rng *rand.Rand) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := [2]agent.Agent{
		agent.NewEvaluationAgent(createMCTS(config1, s.Checks, rng.Uint64())),
		agent.NewEvaluationAgent(createMCTS(config2, s.Checks, rng.Uint64())),
	}
	e := engine.NewLocalEngine(players, agents, s.Game, rng)

	return e.Run(ctx)
}

func createMCTS(config metrics.AgentConfig, checks bool, seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithConsistencyChecks(checks),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Evaluate != nil {
		options = append(options, searcher.WithEvaluationFn(config.Evaluate))
	}

	return searcher.NewMCTS(config.Goroutines, options...)
}
