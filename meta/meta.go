package meta

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the cutoff value for MCTS.
const WITH_CUTOFF = 20

// NUM_GAMES defines the number of games per experiment matchup.
const NUM_GAMES = 30

// OUTPUT_DIR defines where experiment results are written.
const OUTPUT_DIR = "experiments/results"
