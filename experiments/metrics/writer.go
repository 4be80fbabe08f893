package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
	runID   string
}

// NewWriter creates a directory for one run of an experiment under outputDir
func NewWriter(outputDir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp and a run id
	runID := uuid.NewString()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(outputDir, name, timestamp+"-"+runID[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		runID:   runID,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "goroutines", "duration", "episodes", "cutoff"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "duration", "episodes", "full_playouts",
		"nodes_created", "redirects", "inconsistencies", "is_tree_reset"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.NodesCreated),
			strconv.Itoa(record.Redirects),
			strconv.Itoa(record.Inconsistencies),
			strconv.FormatBool(record.IsTreeReset),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteSummaries(summaries []Summary) error {
	header := []string{"agent", "metric", "n", "mean", "std_dev", "median", "min", "max"}
	format := func(f float64) string { return strconv.FormatFloat(f, 'f', 3, 64) }
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Agent),
			s.Metric,
			strconv.Itoa(s.N),
			format(s.Mean),
			format(s.StdDev),
			format(s.Median),
			format(s.Min),
			format(s.Max),
		})
	}
	return w.write("summaries.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
