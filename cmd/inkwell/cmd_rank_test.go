package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, resultsDir string) string {
	t.Helper()
	content := `
results_dir: ` + resultsDir + `
providers:
  - id: mock-a
    family: mock
  - id: mock-b
    family: mock
judges:
  - family: mock
    model: mock-judge
`
	path := filepath.Join(t.TempDir(), "inkwell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func judgment(id string, latencyMs int64, costUSD float64, words, accuracy int) models.JudgmentRecord {
	return models.JudgmentRecord{
		AnalysisRecord: models.AnalysisRecord{
			GenerationRecord: models.GenerationRecord{ID: id, LatencyMs: latencyMs, CostUSD: costUSD},
			WordsCount:       words,
			BrokenLinks:      []string{},
		},
		Accuracy: accuracy, Safety: 3, Factuality: 3, Tone: "neutral",
	}
}

func TestRankCommand_EndToEnd(t *testing.T) {
	resultsDir := t.TempDir()
	cfgPath := writeTestConfig(t, resultsDir)

	table := store.Table[models.JudgmentRecord]{}
	table.Upsert("mock-a", judgment("P1", 100, 0.01, 900, 5))
	table.Upsert("mock-b", judgment("P1", 900, 0.30, 600, 2))
	require.NoError(t, store.Save(filepath.Join(resultsDir, "content_with_judgment.json"), table))

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"rank", "--config", cfgPath})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "=== Contest Results ===")
	assert.Contains(t, out.String(), "🏆 Winner: mock-a")

	data, err := os.ReadFile(filepath.Join(resultsDir, "contest_results.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"model": "mock-a"`)
	assert.Contains(t, string(data), `"model_scores"`)
}

func TestRankCommand_EmptyStore(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir())

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"rank", "--config", cfgPath})
	assert.Error(t, cmd.Execute())
}
