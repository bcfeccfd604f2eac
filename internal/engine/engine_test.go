package engine

import (
	"context"
	"testing"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateUsage(t *testing.T) {
	// 4 words in, 8 words out at 0.75 words per token.
	usage := estimateUsage("one two three four", "a b c d e f g h", 0.75)
	assert.Equal(t, 5, usage.PromptTokens)   // 4 / 0.75 = 5.33 floored
	assert.Equal(t, 10, usage.CompletionTokens)
	assert.Equal(t, 15, usage.TotalTokens)
}

func TestEstimateUsage_FloorOfOne(t *testing.T) {
	usage := estimateUsage("", "", 0.75)
	assert.Equal(t, 1, usage.PromptTokens)
	assert.Equal(t, 1, usage.CompletionTokens)
	assert.Equal(t, 2, usage.TotalTokens)
}

func TestNew_FamilyDispatch(t *testing.T) {
	gen, err := New(config.Provider{ID: "m", Family: config.FamilyMock})
	require.NoError(t, err)
	assert.Equal(t, config.FamilyMock, gen.Family())

	_, err = New(config.Provider{ID: "x", Family: "no-such-family"})
	assert.ErrorContains(t, err, "unknown capability family")
}

func TestMockGenerator_Deterministic(t *testing.T) {
	gen := NewMockGenerator("mock-a")

	first, firstUsage, err := gen.Generate(context.Background(), "sys", "user prompt")
	require.NoError(t, err)
	second, secondUsage, err := gen.Generate(context.Background(), "sys", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstUsage, secondUsage)
	assert.Contains(t, first, "mock-a")
	assert.Equal(t, firstUsage.TotalTokens, firstUsage.PromptTokens+firstUsage.CompletionTokens)
}
