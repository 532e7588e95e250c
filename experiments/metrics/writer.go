package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type AgentConfig struct {
	ID           int
	Kind         string // "selector" or "random"
	Seed         uint64
	ThompsonStep int // Selector only
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type DecisionRecord struct {
	Game   int // GameRecord.ID
	Player int // Seat in the game
	Agent  int // AgentConfig.ID
	DecisionMetric
}

type Setup struct {
	RunID       uuid.UUID     `json:"runId"`
	Name        string        `json:"name"`
	NumGames    int           `json:"numGames"` // per matchup
	Steps       int           `json:"steps"`
	BanditCount int           `json:"banditCount"`
	Decay       float64       `json:"decay"`
	StartTime   time.Time     `json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	Duration    time.Duration `json:"duration"`
}

type Writer struct {
	baseDir string
}

func NewWriter(outDir, name string, runID uuid.UUID) (*Writer, error) {
	// Create a subfolder named by run
	baseDir := filepath.Join(outDir, name, runID.String())
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.json")
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create setup file")
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return errors.Wrap(err, "failed to write setup")
	}

	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "seed", "thompson_step"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.FormatUint(config.Seed, 10),
			strconv.Itoa(config.ThompsonStep),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "steps", "reward1", "reward2", "winner", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.Steps),
			formatReward(record.Rewards, 0),
			formatReward(record.Rewards, 1),
			strconv.Itoa(record.Winner),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	header := []string{"game", "player", "agent", "decisions"}
	for _, branch := range Branches() {
		header = append(header, branch.String())
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Decisions),
		}
		for _, branch := range Branches() {
			row = append(row, strconv.Itoa(record.Count(branch)))
		}
		rows = append(rows, row)
	}
	return w.writeCSV("decision_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "failed to write %s header", name)
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "failed to write %s rows", name)
	}

	return nil
}

func formatReward(rewards []float64, player int) string {
	if player >= len(rewards) {
		return ""
	}
	return strconv.FormatFloat(rewards[player], 'f', -1, 64)
}
