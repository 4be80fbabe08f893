package metrics

import (
	"sync/atomic"
	"time"

	"cardmcts/game"
)

type AgentConfig struct {
	ID         int
	Goroutines int
	Duration   time.Duration
	Episodes   int
	Cutoff     int
	Evaluate   game.Evaluate
}

type SearchMetric struct {
	Goroutines      int
	Duration        time.Duration
	Episodes        int
	Cutoff          int
	Evaluate        game.Evaluate
	FullPlayouts    int
	NodesCreated    int
	Redirects       int // Descents into a node created by another playout
	Inconsistencies int // Discarded playouts
	IsTreeReset     bool
}

type MoveMetric struct {
	Step   int
	Player string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, cutoff int, evaluate game.Evaluate)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	AddNodeCreated()
	AddRedirect()
	AddInconsistency()
	Complete() SearchMetric
}

type collector struct {
	goroutines      int
	cutoff          int
	evaluate        game.Evaluate
	startTime       time.Time
	episodes        atomic.Int32
	fullPlayouts    atomic.Int32
	nodesCreated    atomic.Int32
	redirects       atomic.Int32
	inconsistencies atomic.Int32
	isTreeReset     atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

// Start resets the counters for a new search
func (m *collector) Start(goroutines, cutoff int, evaluate game.Evaluate) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.evaluate = evaluate
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.nodesCreated.Store(0)
	m.redirects.Store(0)
	m.inconsistencies.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddNodeCreated() {
	m.nodesCreated.Add(1)
}

func (m *collector) AddRedirect() {
	m.redirects.Add(1)
}

func (m *collector) AddInconsistency() {
	m.inconsistencies.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:      m.goroutines,
		Duration:        time.Since(m.startTime),
		Episodes:        int(m.episodes.Load()),
		FullPlayouts:    int(m.fullPlayouts.Load()),
		NodesCreated:    int(m.nodesCreated.Load()),
		Redirects:       int(m.redirects.Load()),
		Inconsistencies: int(m.inconsistencies.Load()),
		Cutoff:          m.cutoff,
		Evaluate:        m.evaluate,
		IsTreeReset:     m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff int, evaluate game.Evaluate) {}
func (m *dummyCollector) SetTreeReset(value bool)                              {}
func (m *dummyCollector) AddFullPlayout()                                      {}
func (m *dummyCollector) AddEpisode()                                          {}
func (m *dummyCollector) AddNodeCreated()                                      {}
func (m *dummyCollector) AddRedirect()                                         {}
func (m *dummyCollector) AddInconsistency()                                    {}
func (m *dummyCollector) Complete() SearchMetric                               { return SearchMetric{} }
