package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/engine"
	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	// Judge roster credentials for the judging stage tests.
	t.Setenv("GEMINI_API_KEY", "test-key")
	return &config.Config{
		ResultsDir:   t.TempDir(),
		JudgeDelayMs: 1,
		Providers: []config.Provider{
			{ID: "mock-a", Family: config.FamilyMock, InputRate: 1.0, OutputRate: 2.0},
			{ID: "mock-b", Family: config.FamilyMock},
		},
		Prompts: []models.Prompt{
			{ID: "P1", Title: "First", Keywords: []string{"k1"}},
			{ID: "P2", Title: "Second", Keywords: []string{"k2"}},
		},
		Weights: models.DefaultWeights(),
	}
}

func fixedOutputFactory(text string, usage models.Usage) func(config.Provider) (engine.Generator, error) {
	return func(p config.Provider) (engine.Generator, error) {
		gen := engine.NewMockGenerator(p.ID)
		gen.GenerateFunc = func(context.Context, string, string) (string, models.Usage, error) {
			return text, usage, nil
		}
		return gen, nil
	}
}

func TestGenerationRunner_ProducesAllRecords(t *testing.T) {
	cfg := testConfig(t)
	usage := models.Usage{PromptTokens: 1_000_000, CompletionTokens: 500_000, TotalTokens: 1_500_000}

	runner := NewGenerationRunner(cfg, WithGeneratorFactory(fixedOutputFactory("article body", usage)))

	table, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	rec, ok := table.Lookup("mock-a", "P1")
	require.True(t, ok)
	assert.Equal(t, "First", rec.Title)
	assert.Equal(t, "article body", rec.Response)
	assert.Equal(t, 2.0, rec.CostUSD, "1M input at $1 + 500k output at $2")

	free, ok := table.Lookup("mock-b", "P1")
	require.True(t, ok)
	assert.Equal(t, 0.0, free.CostUSD)

	// The store on disk matches what Run returned.
	persisted, err := store.Load[models.GenerationRecord](cfg.GenerationStorePath())
	require.NoError(t, err)
	assert.Equal(t, table, persisted)
}

func TestGenerationRunner_SkipsFailedRecords(t *testing.T) {
	cfg := testConfig(t)

	runner := NewGenerationRunner(cfg, WithGeneratorFactory(func(p config.Provider) (engine.Generator, error) {
		gen := engine.NewMockGenerator(p.ID)
		gen.GenerateFunc = func(_ context.Context, _, userInstruction string) (string, models.Usage, error) {
			if p.ID == "mock-b" {
				return "", models.Usage{}, errors.New("provider down")
			}
			return "fine", models.Usage{TotalTokens: 2}, nil
		}
		return gen, nil
	}))

	table, err := runner.Run(context.Background())
	require.NoError(t, err, "one failing provider must not abort the stage")
	assert.Len(t, table["mock-a"], 2)
	assert.Empty(t, table["mock-b"])
}

func TestGenerationRunner_EmptyResponseIsSkipped(t *testing.T) {
	cfg := testConfig(t)
	cfg.Providers = cfg.Providers[:1]

	runner := NewGenerationRunner(cfg, WithGeneratorFactory(fixedOutputFactory("   ", models.Usage{})))

	table, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestGenerationRunner_MissingOnlyPreservesExisting(t *testing.T) {
	cfg := testConfig(t)
	cfg.Providers = cfg.Providers[:1]

	// Seed the store with one completed record.
	seeded := store.Table[models.GenerationRecord]{}
	seeded.Upsert("mock-a", models.GenerationRecord{ID: "P1", Response: "original"})
	require.NoError(t, store.Save(cfg.GenerationStorePath(), seeded))

	runner := NewGenerationRunner(cfg,
		WithMissingOnly(true),
		WithGeneratorFactory(fixedOutputFactory("regenerated", models.Usage{TotalTokens: 1})))

	table, err := runner.Run(context.Background())
	require.NoError(t, err)

	kept, ok := table.Lookup("mock-a", "P1")
	require.True(t, ok)
	assert.Equal(t, "original", kept.Response, "existing record must not be regenerated")

	filled, ok := table.Lookup("mock-a", "P2")
	require.True(t, ok)
	assert.Equal(t, "regenerated", filled.Response)
}

func TestGenerationRunner_RerunReplacesRecords(t *testing.T) {
	cfg := testConfig(t)
	cfg.Providers = cfg.Providers[:1]

	first := NewGenerationRunner(cfg, WithGeneratorFactory(fixedOutputFactory("v1", models.Usage{TotalTokens: 1})))
	_, err := first.Run(context.Background())
	require.NoError(t, err)

	second := NewGenerationRunner(cfg, WithGeneratorFactory(fixedOutputFactory("v2", models.Usage{TotalTokens: 1})))
	table, err := second.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, table["mock-a"], 2, "re-run replaces, never duplicates")
	for _, rec := range table["mock-a"] {
		assert.Equal(t, "v2", rec.Response)
	}
}

func TestGenerationRunner_EmitsProgressEvents(t *testing.T) {
	cfg := testConfig(t)

	runner := NewGenerationRunner(cfg, WithGeneratorFactory(fixedOutputFactory("body", models.Usage{TotalTokens: 1})))

	var events []ProgressEvent
	runner.OnProgress(func(event ProgressEvent) {
		events = append(events, event)
	})

	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, EventStageStart, events[0].EventType)
	assert.Equal(t, 4, events[0].Total)
	assert.Equal(t, EventStageComplete, events[len(events)-1].EventType)

	completed := 0
	for _, event := range events {
		if event.EventType == EventRecordComplete {
			completed++
		}
	}
	assert.Equal(t, 4, completed)
}

func TestGenerationRunner_NoProviders(t *testing.T) {
	cfg := testConfig(t)
	cfg.Providers = nil

	runner := NewGenerationRunner(cfg)
	_, err := runner.Run(context.Background())
	assert.Error(t, err)
}
