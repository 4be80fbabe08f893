package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cardmcts/game"
	"cardmcts/meta"
	"cardmcts/searcher"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Search      SearchConfig      `mapstructure:"search"`
	Game        GameConfig        `mapstructure:"game"`
	Log         LogConfig         `mapstructure:"log"`
	Experiments ExperimentsConfig `mapstructure:"experiments"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

type SearchConfig struct {
	Goroutines       int           `mapstructure:"goroutines"`
	Episodes         int           `mapstructure:"episodes"`
	Duration         time.Duration `mapstructure:"duration"`
	Cutoff           int           `mapstructure:"cutoff"`
	Exploration      float64       `mapstructure:"exploration"` // Squared UCT exploration constant
	CheckConsistency bool          `mapstructure:"check_consistency"`
	Seed             uint64        `mapstructure:"seed"` // 0 seeds from the OS
}

type GameConfig struct {
	MaxTurns       int `mapstructure:"max_turns"`
	StartingHealth int `mapstructure:"starting_health"`
	HandSize       int `mapstructure:"hand_size"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ExperimentsConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Games     int    `mapstructure:"games"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // Prometheus listen address, "" to disable
}

func setDefaults(v *viper.Viper) {
	g := game.DefaultConfig()
	v.SetDefault("search.goroutines", meta.GO_ROUTINES)
	v.SetDefault("search.episodes", meta.EPISODES)
	v.SetDefault("search.duration", time.Duration(0))
	v.SetDefault("search.cutoff", meta.WITH_CUTOFF)
	v.SetDefault("search.exploration", searcher.CSquared)
	v.SetDefault("search.check_consistency", true)
	v.SetDefault("search.seed", uint64(0))
	v.SetDefault("game.max_turns", g.MaxTurns)
	v.SetDefault("game.starting_health", g.StartingHealth)
	v.SetDefault("game.hand_size", g.HandSize)
	v.SetDefault("log.level", "info")
	v.SetDefault("experiments.output_dir", meta.OUTPUT_DIR)
	v.SetDefault("experiments.games", meta.NUM_GAMES)
	v.SetDefault("metrics.addr", "")
}

// Default returns the configuration used when no file or environment overrides are given.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path, if any, then CARDMCTS_ prefixed
// environment variables, e.g. CARDMCTS_SEARCH_GOROUTINES.
func Load(path string) (Config, error) {
	var cfg Config
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CARDMCTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Search.Goroutines > 0, "search.goroutines must be positive, got %d", c.Search.Goroutines)
	check(c.Search.Episodes >= 0, "search.episodes must not be negative, got %d", c.Search.Episodes)
	check(c.Search.Duration >= 0, "search.duration must not be negative, got %s", c.Search.Duration)
	check(c.Search.Episodes > 0 || c.Search.Duration > 0, "one of search.episodes and search.duration is required")
	check(c.Search.Cutoff >= 0, "search.cutoff must not be negative, got %d", c.Search.Cutoff)
	check(c.Search.Exploration > 0, "search.exploration must be positive, got %g", c.Search.Exploration)
	check(c.Game.MaxTurns > 0, "game.max_turns must be positive, got %d", c.Game.MaxTurns)
	check(c.Game.StartingHealth > 0, "game.starting_health must be positive, got %d", c.Game.StartingHealth)
	check(c.Game.HandSize >= 0 && c.Game.HandSize <= game.MaxHand, "game.hand_size must be within 0..%d, got %d", game.MaxHand, c.Game.HandSize)
	check(c.Experiments.Games > 0, "experiments.games must be positive, got %d", c.Experiments.Games)
	_, err := zerolog.ParseLevel(c.Log.Level)
	check(err == nil, "log.level %q is not a level", c.Log.Level)

	return errors.Join(errs...)
}

// SearchOptions converts the search section for searcher.NewMCTS.
// Episodes take precedence over duration.
func (c Config) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithExploration(c.Search.Exploration),
		searcher.WithConsistencyChecks(c.Search.CheckConsistency),
		searcher.WithSeed(c.Search.Seed),
		searcher.WithMetrics(),
	}
	if c.Search.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(c.Search.Episodes))
	} else {
		options = append(options, searcher.WithDuration(c.Search.Duration))
	}
	if c.Search.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(c.Search.Cutoff))
	}
	return options
}

func (c Config) GameConfig() game.Config {
	return game.Config{
		StartingHealth: c.Game.StartingHealth,
		HandSize:       c.Game.HandSize,
		MaxTurns:       c.Game.MaxTurns,
	}
}

func (c Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
