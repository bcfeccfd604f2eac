package ranking

import (
	"testing"

	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, latencyMs int64, costUSD float64, words, accuracy, safety, factuality, _ int) models.JudgmentRecord {
	return models.JudgmentRecord{
		AnalysisRecord: models.AnalysisRecord{
			GenerationRecord: models.GenerationRecord{
				ID:        id,
				LatencyMs: latencyMs,
				CostUSD:   costUSD,
			},
			WordsCount: words,
		},
		Accuracy:   accuracy,
		Safety:     safety,
		Factuality: factuality,
		Tone:       "neutral",
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.5, Normalize(5, 0, 10))
	assert.Equal(t, 0.0, Normalize(0, 0, 10))
	assert.Equal(t, 1.0, Normalize(10, 0, 10))
}

func TestNormalize_DegenerateBounds(t *testing.T) {
	assert.Equal(t, 0.5, Normalize(7, 7, 7))
	assert.Equal(t, 0.5, Normalize(0, 3, 3))
}

func TestComputeBounds_GlobalAcrossModels(t *testing.T) {
	table := store.Table[models.JudgmentRecord]{}
	table.Upsert("a", record("P1", 100, 0.01, 500, 3, 4, 2, 0))
	table.Upsert("a", record("P2", 300, 0.05, 900, 5, 4, 3, 0))
	table.Upsert("b", record("P1", 50, 0.10, 1200, 1, 2, 5, 0))

	bounds := ComputeBounds(table)
	assert.Equal(t, models.Bounds{Min: 50, Max: 300}, bounds.LatencyMs)
	assert.Equal(t, models.Bounds{Min: 0.01, Max: 0.10}, bounds.CostUSD)
	assert.Equal(t, models.Bounds{Min: 500, Max: 1200}, bounds.WordsCount)
	assert.Equal(t, models.Bounds{Min: 1, Max: 5}, bounds.Accuracy)
}

func TestRecordScore_InvertsLatencyAndCost(t *testing.T) {
	table := store.Table[models.JudgmentRecord]{}
	fast := record("P1", 100, 0.01, 500, 3, 3, 3, 3)
	slow := record("P2", 1000, 0.50, 500, 3, 3, 3, 3)
	table.Upsert("a", fast)
	table.Upsert("a", slow)

	bounds := ComputeBounds(table)
	weights := models.Weights{Latency: 0.5, Cost: 0.5}

	assert.InDelta(t, 1.0, RecordScore(fast, bounds, weights), 1e-9,
		"fastest and cheapest record gets the full latency and cost weight")
	assert.InDelta(t, 0.0, RecordScore(slow, bounds, weights), 1e-9)
}

func TestRank_Deterministic(t *testing.T) {
	table := store.Table[models.JudgmentRecord]{}
	table.Upsert("model-a", record("P1", 100, 0.01, 800, 4, 4, 4, 4))
	table.Upsert("model-a", record("P2", 200, 0.02, 900, 5, 4, 4, 4))
	table.Upsert("model-b", record("P1", 150, 0.03, 700, 3, 5, 3, 3))
	table.Upsert("model-b", record("P2", 250, 0.04, 600, 4, 5, 2, 2))

	first, err := Rank(table, models.DefaultWeights())
	require.NoError(t, err)

	for range 10 {
		again, err := Rank(table, models.DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRank_TieBreakLexicographic(t *testing.T) {
	table := store.Table[models.JudgmentRecord]{}
	// Identical records produce identical (all 0.5 normalized) scores.
	table.Upsert("zeta", record("P1", 100, 0.01, 500, 3, 3, 3, 3))
	table.Upsert("alpha", record("P1", 100, 0.01, 500, 3, 3, 3, 3))

	result, err := Rank(table, models.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, "alpha", result.Winner.Model)
	assert.InDelta(t, result.ModelScores["alpha"], result.ModelScores["zeta"], 1e-12)
}

func TestRank_WeightFlipChangesWinner(t *testing.T) {
	table := store.Table[models.JudgmentRecord]{}
	// cheap-model: fast and cheap, mediocre quality.
	table.Upsert("cheap-model", record("P1", 100, 0.01, 800, 2, 3, 2, 2))
	// smart-model: slow and expensive, high quality.
	table.Upsert("smart-model", record("P1", 900, 0.40, 800, 5, 5, 5, 5))

	costHeavy := models.Weights{Cost: 0.6, Latency: 0.3, Accuracy: 0.1}
	result, err := Rank(table, costHeavy)
	require.NoError(t, err)
	assert.Equal(t, "cheap-model", result.Winner.Model)

	qualityHeavy := models.Weights{Cost: 0.1, Accuracy: 0.5, Safety: 0.2, Factuality: 0.2}
	result, err = Rank(table, qualityHeavy)
	require.NoError(t, err)
	assert.Equal(t, "smart-model", result.Winner.Model)
	assert.Equal(t, qualityHeavy, result.Weights, "snapshot records the weights used")
}

func TestRank_EmptyTable(t *testing.T) {
	_, err := Rank(store.Table[models.JudgmentRecord]{}, models.DefaultWeights())
	assert.Error(t, err)
}
