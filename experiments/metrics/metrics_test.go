package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrently", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 10, nil)
		c.SetTreeReset(true)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.AddEpisode()
				c.AddNodeCreated()
				if i%4 == 0 {
					c.AddFullPlayout()
					c.AddRedirect()
				}
				if i%10 == 0 {
					c.AddInconsistency()
				}
			}()
		}
		wg.Wait()

		got := c.Complete()
		require.Equal(t, 4, got.Goroutines)
		require.Equal(t, 10, got.Cutoff)
		require.Equal(t, 100, got.Episodes)
		require.Equal(t, 100, got.NodesCreated)
		require.Equal(t, 25, got.FullPlayouts)
		require.Equal(t, 25, got.Redirects)
		require.Equal(t, 10, got.Inconsistencies)
		require.True(t, got.IsTreeReset)
	})

	t.Run("start resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1, nil)
		c.AddEpisode()
		c.Start(1, 1, nil)
		require.Zero(t, c.Complete().Episodes)
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(1, 1, nil)
		c.AddEpisode()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestSummarize(t *testing.T) {
	t.Run("distribution of values", func(t *testing.T) {
		got := Summarize(1, "episodes", []float64{4, 1, 3, 2})
		require.Equal(t, 4, got.N)
		require.InDelta(t, 2.5, got.Mean, 1e-9)
		require.InDelta(t, 1.2910, got.StdDev, 1e-4)
		require.Equal(t, 2.0, got.Median)
		require.Equal(t, 1.0, got.Min)
		require.Equal(t, 4.0, got.Max)
	})

	t.Run("single value", func(t *testing.T) {
		got := Summarize(1, "episodes", []float64{7})
		require.Equal(t, 7.0, got.Mean)
		require.Zero(t, got.StdDev)
	})

	t.Run("no values", func(t *testing.T) {
		require.Equal(t, Summary{Agent: 2, Metric: "redirects"}, Summarize(2, "redirects", nil))
	})

	t.Run("moves by agent", func(t *testing.T) {
		records := []MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Player: "player1", SearchMetric: SearchMetric{Episodes: 10}}},
			{Game: 1, MoveMetric: MoveMetric{Player: "player2", SearchMetric: SearchMetric{Episodes: 30}}},
			{Game: 2, MoveMetric: MoveMetric{Player: "player2", SearchMetric: SearchMetric{Episodes: 20}}},
		}
		agents := func(game int, player string) int {
			if (game == 1) == (player == "player1") {
				return 5
			}
			return 3
		}

		got := SummarizeMoves(records, agents)
		require.Len(t, got, 2*4)
		require.Equal(t, 3, got[0].Agent, "Agents should be ordered by ID")
		require.Equal(t, "episodes", got[0].Metric)
		require.Equal(t, 30.0, got[0].Mean)
		require.Equal(t, 5, got[4].Agent)
		require.Equal(t, 15.0, got[4].Mean)
	})
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "smoke")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(w.Dir(), filepath.Join(dir, "smoke")))
	require.Len(t, w.RunID(), 36)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Goroutines: 2, Duration: time.Second}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{ID: 1, Agent1: 1, Agent2: 2, GameMetric: GameMetric{Winner: "player1"}}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: "player1"}}}))
	require.NoError(t, w.WriteSummaries([]Summary{Summarize(1, "episodes", []float64{1, 2})}))

	data, err := os.ReadFile(filepath.Join(w.Dir(), "agent_configs.csv"))
	require.NoError(t, err)
	require.Equal(t, "id,goroutines,duration,episodes,cutoff\n1,2,1s,0,0\n", string(data))

	data, err = os.ReadFile(filepath.Join(w.Dir(), "summaries.csv"))
	require.NoError(t, err)
	require.Contains(t, string(data), "1,episodes,2,1.500,0.707,1.000,1.000,2.000")

	other, err := NewWriter(dir, "smoke")
	require.NoError(t, err)
	require.NotEqual(t, w.Dir(), other.Dir(), "Runs should not overwrite each other")
}
