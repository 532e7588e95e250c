package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	runID := uuid.New()
	w, err := NewWriter(t.TempDir(), "test", runID)
	require.NoError(t, err)
	require.Equal(t, runID.String(), filepath.Base(w.BaseDir()), "Run directory should be named by run ID")

	t.Run("agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Kind: "selector", Seed: 42, ThompsonStep: 1000},
			{ID: 2, Kind: "random", Seed: 7},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "agent_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "kind", "seed", "thompson_step"},
			{"1", "selector", "42", "1000"},
			{"2", "random", "7", "0"},
		}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID:     1,
			Agent1: 1,
			Agent2: 2,
			GameMetric: GameMetric{
				StartTime: start,
				EndTime:   start.Add(time.Second),
				Duration:  time.Second,
				Steps:     2000,
				Rewards:   []float64{650, 512},
				Winner:    0,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "1", "2", "2000", "650", "512", "0", "2020-12-01T00:00:00Z", "2020-12-01T00:00:01Z", "1s"}, rows[1])
	})

	t.Run("decision records", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.Add(Opening)
		c.Add(UCB)
		c.Add(FollowOpponent)
		err := w.WriteDecisionRecords([]DecisionRecord{{Game: 1, Player: 1, Agent: 2, DecisionMetric: c.Complete()}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "decision_records.csv"))
		require.Equal(t, []string{"game", "player", "agent", "decisions", "opening", "repeat_win", "ucb", "thompson", "repeat_streak", "follow_opponent"}, rows[0])
		require.Equal(t, []string{"1", "1", "2", "3", "1", "0", "1", "0", "0", "1"}, rows[1])
	})

	t.Run("setup", func(t *testing.T) {
		err := w.WriteSetup(Setup{RunID: runID, Name: "test", NumGames: 3, Steps: 100})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(w.BaseDir(), "setup.json"))
		require.NoError(t, err)
		var setup Setup
		require.NoError(t, json.Unmarshal(data, &setup))
		require.Equal(t, runID, setup.RunID)
		require.Equal(t, 3, setup.NumGames)
	})
}
