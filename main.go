package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"cardmcts/config"
	"cardmcts/engine"
	"cardmcts/experiments"
	"cardmcts/searcher"
	"cardmcts/searcher/agent"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

var (
	configPath  string
	metricsAddr string
	cfg         config.Config

	rootCmd = &cobra.Command{
		Use:   "cardmcts",
		Short: "Concurrent transposition aware MCTS for a hidden information card duel",
		Long: `cardmcts searches a two player card duel with information set Monte Carlo
tree search. Several goroutines share one tree whose nodes are merged
whenever two lines of play look the same to the searching player.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play one duel between two evaluation agents",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}

	experimentCmd = &cobra.Command{
		Use:       "experiment [name]",
		Short:     "Run an experiment and write its results as CSV",
		Long:      "Known experiments: " + strings.Join(experiments.Names, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: experiments.Names,
		RunE:      runExperiment,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, overrides metrics.addr")
	rootCmd.AddCommand(playCmd, experimentCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(cfg.LogLevel()).
		With().Timestamp().Logger()
	cmd.SetContext(log.Logger.WithContext(cmd.Context()))

	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr)
	}
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics server stopped")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	players := [2]string{"Player1", "Player2"}
	agents := [2]agent.Agent{
		agent.NewEvaluationAgent(searcher.NewMCTS(cfg.Search.Goroutines, cfg.SearchOptions()...)),
		agent.NewEvaluationAgent(searcher.NewMCTS(cfg.Search.Goroutines, cfg.SearchOptions()...)),
	}
	seed := cfg.Search.Seed
	if seed == 0 {
		seed = frand.Uint64n(1 << 62)
	}
	e := engine.NewLocalEngine(players, agents, cfg.GameConfig(), rand.New(rand.NewSource(seed)))

	winner, game, _, err := e.Run(cmd.Context())
	if err != nil {
		return err
	}
	log.Info().
		Str("winner", winner).
		Int("moves", game.TotalMoves).
		Dur("duration", game.Duration).
		Msg("game over")
	return nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	settings := experiments.Settings{
		OutputDir: cfg.Experiments.OutputDir,
		Games:     cfg.Experiments.Games,
		Budget:    cfg.Search.Duration,
		Episodes:  cfg.Search.Episodes,
		Game:      cfg.GameConfig(),
		Seed:      cfg.Search.Seed,
		Checks:    cfg.Search.CheckConsistency,
	}
	dir, err := experiments.Run(cmd.Context(), args[0], settings)
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msgf("finished %s experiment", args[0])
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
