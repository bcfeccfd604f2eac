package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The store files are a compatibility surface: records written by older
// runs must keep loading, so the JSON keys are pinned here.
func TestJudgmentRecord_JSONKeys(t *testing.T) {
	rec := JudgmentRecord{
		AnalysisRecord: AnalysisRecord{
			GenerationRecord: GenerationRecord{
				ID:               "P1",
				Title:            "Title",
				Keywords:         []string{"k"},
				PromptTokens:     10,
				CompletionTokens: 20,
				TotalTokens:      30,
				LatencyMs:        1234,
				CostUSD:          0.0123,
				Response:         "body",
			},
			WordsCount:  100,
			BrokenLinks: []string{},
		},
		Accuracy:   4,
		Safety:     5,
		Factuality: 3,
		Tone:       "warm",
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))

	for _, key := range []string{
		"id", "title", "keywords",
		"prompt_tokens", "completion_tokens", "total_tokens",
		"latency_ms", "cost_usd", "response",
		"words_count", "broken_links",
		"accuracy", "safety", "factuality", "tone",
	} {
		assert.Contains(t, keys, key)
	}
	assert.Len(t, keys, 15, "embedding must flatten, not nest")
	assert.Equal(t, "[]", string(keys["broken_links"]), "empty broken links serialize as [], not null")
}

func TestGenerationRecord_Key(t *testing.T) {
	assert.Equal(t, "P3", GenerationRecord{ID: "P3"}.Key())
}

func TestDefaultWeights_SumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-12)
}

func TestQCVerdict_Approved(t *testing.T) {
	assert.True(t, QCVerdict{Verdict: "APPROVED"}.Approved())
	assert.False(t, QCVerdict{Verdict: "REJECTED"}.Approved())
	assert.False(t, QCVerdict{Verdict: "approved"}.Approved(), "verdict comparison is exact")
}

func TestContestResult_JSONShape(t *testing.T) {
	result := ContestResult{
		ModelScores: map[string]float64{"m": 0.5},
		Winner:      Winner{Model: "m", Score: 0.5},
		Weights:     DefaultWeights(),
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Contains(t, keys, "bounds")
	assert.Contains(t, keys, "model_scores")
	assert.Contains(t, keys, "winner")
	assert.Contains(t, keys, "weights")
}
