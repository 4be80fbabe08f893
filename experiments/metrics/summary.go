package metrics

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of one search metric over many moves.
type Summary struct {
	Agent  int
	Metric string
	N      int
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}

// Summarize describes values, which need not be sorted.
func Summarize(agent int, metric string, values []float64) Summary {
	summary := Summary{Agent: agent, Metric: metric, N: len(values)}
	if len(values) == 0 {
		return summary
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	summary.Mean, summary.StdDev = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		summary.StdDev = 0
	}
	summary.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	summary.Min = sorted[0]
	summary.Max = sorted[len(sorted)-1]
	return summary
}

// SummarizeMoves summarizes the search metrics of every move made by each agent.
// agents maps a player of a game to the ID of the agent playing it.
func SummarizeMoves(records []MoveRecord, agents func(game int, player string) int) []Summary {
	type key struct {
		agent  int
		metric string
	}
	metrics := []string{"episodes", "nodes_created", "redirects", "inconsistencies"}
	values := make(map[key][]float64)
	ids := []int{}

	for _, record := range records {
		agent := agents(record.Game, record.Player)
		if !slices.Contains(ids, agent) {
			ids = append(ids, agent)
		}
		for i, value := range []int{record.Episodes, record.NodesCreated, record.Redirects, record.Inconsistencies} {
			k := key{agent: agent, metric: metrics[i]}
			values[k] = append(values[k], float64(value))
		}
	}

	slices.Sort(ids)
	summaries := make([]Summary, 0, len(ids)*len(metrics))
	for _, agent := range ids {
		for _, metric := range metrics {
			summaries = append(summaries, Summarize(agent, metric, values[key{agent: agent, metric: metric}]))
		}
	}
	return summaries
}
