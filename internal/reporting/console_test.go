package reporting

import (
	"strings"
	"testing"

	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *models.ContestResult {
	return &models.ContestResult{
		Bounds: models.ContestBounds{
			LatencyMs:  models.Bounds{Min: 100, Max: 900},
			CostUSD:    models.Bounds{Min: 0.01, Max: 0.4},
			WordsCount: models.Bounds{Min: 500, Max: 1200},
			Accuracy:   models.Bounds{Min: 2, Max: 5},
			Safety:     models.Bounds{Min: 3, Max: 5},
			Factuality: models.Bounds{Min: 2, Max: 5},
		},
		ModelScores: map[string]float64{
			"model-a": 0.6412,
			"model-b": 0.4203,
		},
		Winner:  models.Winner{Model: "model-a", Score: 0.6412},
		Weights: models.DefaultWeights(),
	}
}

func TestWriteSummary(t *testing.T) {
	var sb strings.Builder
	WriteSummary(&sb, sampleResult())
	out := sb.String()

	assert.Contains(t, out, "=== Contest Results ===")
	assert.Contains(t, out, "latency_ms: min=100.00, max=900.00")
	assert.Contains(t, out, "cost_usd: min=0.01, max=0.40")
	assert.Contains(t, out, "model-a: 0.6412")
	assert.Contains(t, out, "model-b: 0.4203")
	assert.Contains(t, out, "🏆 Winner: model-a with score 0.6412")

	// Scores are listed in descending order.
	assert.Less(t, strings.Index(out, "model-a: 0.6412"), strings.Index(out, "model-b: 0.4203"))
}

func TestWriteScoreTable(t *testing.T) {
	var sb strings.Builder
	WriteScoreTable(&sb, sampleResult())
	out := sb.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "MODEL")
	assert.Contains(t, lines[0], "SCORE")
	assert.Contains(t, lines[1], "model-a")
	assert.Contains(t, lines[1], "🏆")
	assert.Contains(t, lines[2], "model-b")
	assert.NotContains(t, lines[2], "🏆")
}

func TestSortedScores_TieBreak(t *testing.T) {
	sorted := sortedScores(map[string]float64{"b": 0.5, "a": 0.5, "c": 0.9})
	assert.Equal(t, "c", sorted[0].Model)
	assert.Equal(t, "a", sorted[1].Model, "ties resolve lexicographically")
	assert.Equal(t, "b", sorted[2].Model)
}

func TestWriteUsage(t *testing.T) {
	table := store.Table[models.GenerationRecord]{}
	table.Upsert("model-a", models.GenerationRecord{ID: "P1", TotalTokens: 1_200_000, CostUSD: 1.5})
	table.Upsert("model-a", models.GenerationRecord{ID: "P2", TotalTokens: 300_000, CostUSD: 0.25})

	var sb strings.Builder
	WriteUsage(&sb, table)
	out := sb.String()

	assert.Contains(t, out, "model-a: 2 articles, 1,500,000 tokens, $1.7500")
}
