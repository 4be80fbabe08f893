package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cardmcts/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.Validate())
		require.Equal(t, 8, cfg.Search.Goroutines)
		require.Equal(t, 150, cfg.Search.Episodes)
		require.True(t, cfg.Search.CheckConsistency)
		require.Equal(t, searcher.CSquared, cfg.Search.Exploration)
		require.Equal(t, 40, cfg.Game.MaxTurns)
		require.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
search:
  goroutines: 2
  episodes: 0
  duration: 250ms
  check_consistency: false
  seed: 42
game:
  max_turns: 10
log:
  level: debug
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 2, cfg.Search.Goroutines)
		require.Equal(t, 250*time.Millisecond, cfg.Search.Duration)
		require.False(t, cfg.Search.CheckConsistency)
		require.Equal(t, uint64(42), cfg.Search.Seed)
		require.Equal(t, 10, cfg.GameConfig().MaxTurns)
		require.Equal(t, 20, cfg.GameConfig().StartingHealth, "Unset keys keep their defaults")
		require.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "search:\n  goroutines: 2\n")
		t.Setenv("CARDMCTS_SEARCH_GOROUTINES", "3")
		t.Setenv("CARDMCTS_METRICS_ADDR", ":9100")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 3, cfg.Search.Goroutines)
		require.Equal(t, ":9100", cfg.Metrics.Addr)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, `
search:
  goroutines: 0
  episodes: 0
log:
  level: loud
`)
		_, err := Load(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.ErrorContains(t, err, "search.goroutines")
		require.ErrorContains(t, err, "search.episodes")
		require.ErrorContains(t, err, "log.level")
	})
}

func TestSearchOptions(t *testing.T) {
	t.Run("episodes budget", func(t *testing.T) {
		cfg := Default()
		require.NotPanics(t, func() {
			searcher.NewMCTS(cfg.Search.Goroutines, cfg.SearchOptions()...)
		})
	})

	t.Run("duration budget", func(t *testing.T) {
		cfg := Default()
		cfg.Search.Episodes = 0
		cfg.Search.Duration = time.Millisecond
		require.NoError(t, cfg.Validate())
		require.NotPanics(t, func() {
			searcher.NewMCTS(cfg.Search.Goroutines, cfg.SearchOptions()...)
		})
	})
}
