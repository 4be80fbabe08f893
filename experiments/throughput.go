package experiments

import (
	"context"

	"cardmcts/experiments/metrics"
)

// RunThroughput plays each agent against itself for the same playing
// strength and similar game length, to compare episodes per move.
func RunThroughput(ctx context.Context, s Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][2]metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8, 16, 32} {
		config := s.agent(i+1, goroutines, 0)
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}

	return runExperiment(ctx, s, "throughput", configs, matchUps)
}
