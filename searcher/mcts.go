package searcher

import (
	"context"
	"errors"
	"math"
	"time"

	"cardmcts/experiments/metrics"
	"cardmcts/game"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines  int
	duration    time.Duration
	episodes    int
	cutoff      int
	exploration float64
	checks      bool
	seed        uint64
	searches    uint64
	evaluate    game.Evaluate
	tree        *Tree
	metrics     metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(u *MCTS) {
		if duration > 0 {
			u.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(u *MCTS) {
		if episodes > 0 {
			u.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(u *MCTS) {
		if depth > 0 {
			u.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithExploration sets the squared UCT exploration constant
func WithExploration(cSquared float64) Option {
	return func(m *MCTS) {
		if cSquared > 0 {
			m.exploration = cSquared
		}
	}
}

// WithConsistencyChecks turns discarding of playouts that disagree with the tree on or off
func WithConsistencyChecks(enabled bool) Option {
	return func(m *MCTS) {
		m.checks = enabled
	}
}

// WithSeed makes searches with a single goroutine reproducible
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:  goroutines,
		cutoff:      MaxCutoff,
		exploration: CSquared,
		checks:      true,
		evaluate:    game.EvaluateBoard,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines <= 0 {
		panic("Must specify a positive number of goroutines")
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	if m.seed == 0 {
		m.seed = frand.Uint64n(math.MaxUint64) + 1
	}
	return m
}

// Simulate searches state for the player to act and returns the visits of
// every choice out of the root. path lists the choices made since the last
// search so the tree built then can be reused.
func (m *MCTS) Simulate(ctx context.Context, state game.State, path []Segment) (map[int]float64, metrics.SearchMetric, error) {
	if state.Player() == "" {
		return nil, metrics.SearchMetric{}, ErrGameOver
	}
	m.findRoot(state, path)

	logger := zerolog.Ctx(ctx).With().
		Str("observer", m.tree.observer).
		Int("goroutines", m.goroutines).
		Logger()
	ctx = logger.WithContext(ctx)

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff, m.evaluate)
	start := time.Now()
	var err error
	if m.episodes > 0 {
		err = m.iterate(ctx, state)
	} else {
		err = m.countdown(ctx, state)
	}
	searchDuration.Observe(time.Since(start).Seconds())
	metric := m.metrics.Complete()
	m.searches++
	if err != nil {
		return nil, metric, err
	}

	// Output choice policy and search metrics
	policy := m.tree.root.Policy()
	logger.Debug().
		Int("episodes", metric.Episodes).
		Int("nodes", metric.NodesCreated).
		Int("inconsistencies", metric.Inconsistencies).
		Msg("search complete")
	return policy, metric, nil
}

// Tree returns the tree of the last search, nil before the first one.
func (m *MCTS) Tree() *Tree {
	return m.tree
}

func (m *MCTS) findRoot(state game.State, path []Segment) {
	if m.tree != nil && m.tree.Advance(path, state) {
		m.metrics.SetTreeReset(false)
		return
	}
	m.tree = NewTree(state, m.checks)
	m.metrics.SetTreeReset(true)
}

func (m *MCTS) iterate(ctx context.Context, state game.State) error {
	task := make(chan struct{}, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- struct{}{}
	}
	close(task)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		rng := m.newRand(i)
		g.Go(func() error {
			for range task {
				// Cancellation is only honored between playouts
				if err := ctx.Err(); err != nil {
					return err
				}
				m.playout(ctx, state, rng)
			}
			return nil
		})
	}

	return g.Wait()
}

func (m *MCTS) countdown(ctx context.Context, state game.State) error {
	deadline, cancel := context.WithTimeout(ctx, m.duration)
	defer cancel()

	g, gctx := errgroup.WithContext(deadline)
	for i := 0; i < m.goroutines; i++ {
		rng := m.newRand(i)
		g.Go(func() error {
			for gctx.Err() == nil {
				m.playout(gctx, state, rng)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Running out of time is the normal end of a countdown
	return ctx.Err()
}

// newRand gives every goroutine of every search its own stream
func (m *MCTS) newRand(goroutine int) *rand.Rand {
	seed := m.seed + m.searches*uint64(m.goroutines) + uint64(goroutine)
	return rand.New(rand.NewSource(seed))
}

func (m *MCTS) playout(ctx context.Context, state game.State, rng *rand.Rand) {
	defer m.metrics.AddEpisode()

	tree := m.tree
	board := state.Determinize(tree.observer, rng)
	node, board, err := m.selectThenExpand(tree, board, rng)
	if err != nil {
		var inconsistency *InconsistencyError
		if errors.As(err, &inconsistency) {
			inconsistenciesTotal.WithLabelValues(inconsistency.Kind.String()).Inc()
			zerolog.Ctx(ctx).Warn().
				Str("kind", inconsistency.Kind.String()).
				Int("depth", inconsistency.Depth).
				Uint64("fingerprint", uint64(inconsistency.Fingerprint)).
				Msg("discarding playout")
		}
		m.metrics.AddInconsistency()
		playoutsTotal.WithLabelValues("discarded").Inc()
		return
	}

	outcome := rollout(board, m.cutoff, m.evaluate, rng, m.metrics)
	tree.Backpropagate(node, outcome)
	playoutsTotal.WithLabelValues("backed_up").Inc()
}

// selectThenExpand descends from the root until it creates a node or reaches
// the end of the game. Descents into nodes created by other playouts keep going.
func (m *MCTS) selectThenExpand(tree *Tree, board game.State, rng *rand.Rand) (*TreeNode, game.State, error) {
	node := tree.root
	for {
		choices := board.Choices()
		if len(choices) == 0 { // Terminal node
			return node, board, nil
		}

		choice := selectChoice(node, choices, m.exploration, rng)
		step, err := tree.DescendOrExpand(node, node.Edge(choice), board)
		if err != nil {
			return nil, nil, err
		}
		if step.Created {
			m.metrics.AddNodeCreated()
			nodesCreatedTotal.Inc()
			return step.Node, step.Board, nil
		}
		m.metrics.AddRedirect()
		redirectsTotal.Inc()
		node, board = step.Node, step.Board
	}
}

func rollout(state game.State, cutoff int, evaluate game.Evaluate, rng *rand.Rand, metrics metrics.Collector) Outcome {
	depth := 0
	choices := state.Choices()
	// Rollout till game over or for cutoff number of choices
	for len(choices) > 0 && (depth < cutoff) {
		choice := choices[rng.Intn(len(choices))] // Random rollout policy
		state = state.Play(choice)
		choices = state.Choices()
		depth++
	}

	if len(choices) == 0 { // Game over before cutoff
		metrics.AddFullPlayout()
		if state.Winner() == game.Draw {
			return Outcome{Player: game.Draw, Score: 0}
		}
		return Outcome{Player: state.Winner(), Score: WIN}
	}

	// At cutoff state, return an evaluation score from current player's perspective
	return Outcome{Player: state.Player(), Score: evaluate(state)}
}
