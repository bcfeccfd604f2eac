package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/engine"
	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/prompts"
	"github.com/inkwell-ai/inkwell/internal/store"
)

// GenerationRunner runs the generation stage: every configured provider
// against every prompt, sequentially in roster order. Each produced
// record is merged and the store rewritten immediately, so a crash
// loses at most the in-flight call.
type GenerationRunner struct {
	notifier

	cfg *config.Config

	// newGenerator is overridable in tests.
	newGenerator func(config.Provider) (engine.Generator, error)

	// missingOnly skips (provider, prompt) pairs that already have a
	// record instead of regenerating them.
	missingOnly bool

	// now is overridable in tests for deterministic latency values.
	now func() time.Time
}

// GenerationOption configures a GenerationRunner.
type GenerationOption func(*GenerationRunner)

// WithMissingOnly makes the runner produce only records absent from the
// store, leaving existing ones untouched.
func WithMissingOnly(missingOnly bool) GenerationOption {
	return func(r *GenerationRunner) {
		r.missingOnly = missingOnly
	}
}

// WithGeneratorFactory replaces the engine constructor.
func WithGeneratorFactory(factory func(config.Provider) (engine.Generator, error)) GenerationOption {
	return func(r *GenerationRunner) {
		r.newGenerator = factory
	}
}

// NewGenerationRunner creates a generation stage runner.
func NewGenerationRunner(cfg *config.Config, opts ...GenerationOption) *GenerationRunner {
	r := &GenerationRunner{
		cfg:          cfg,
		newGenerator: engine.New,
		now:          time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run executes the stage and returns the merged table. A provider
// failure on one prompt is logged and skipped; the run continues and
// the missing record can be filled in by a later run.
func (r *GenerationRunner) Run(ctx context.Context) (store.Table[models.GenerationRecord], error) {
	if len(r.cfg.Providers) == 0 {
		return nil, fmt.Errorf("no providers configured")
	}
	if err := config.RequireCredentials(r.cfg.ProviderFamilies()...); err != nil {
		return nil, err
	}

	path := r.cfg.GenerationStorePath()
	table, err := store.Load[models.GenerationRecord](path)
	if err != nil {
		return nil, err
	}

	total := len(r.cfg.Providers) * len(r.cfg.Prompts)
	r.notify(ProgressEvent{EventType: EventStageStart, Stage: "generate", Total: total})

	current := 0
	for _, provider := range r.cfg.Providers {
		gen, err := r.newGenerator(provider)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", provider.ID, err)
		}

		slog.Info("generating articles", "model", provider.ID, "family", provider.Family)
		for _, prompt := range r.cfg.Prompts {
			current++
			if r.missingOnly {
				if _, ok := table.Lookup(provider.ID, prompt.ID); ok {
					r.notify(ProgressEvent{
						EventType: EventRecordSkipped,
						Stage:     "generate",
						Model:     provider.ID,
						PromptID:  prompt.ID,
						Current:   current,
						Total:     total,
					})
					continue
				}
			}

			r.notify(ProgressEvent{
				EventType: EventRecordStart,
				Stage:     "generate",
				Model:     provider.ID,
				PromptID:  prompt.ID,
				Current:   current,
				Total:     total,
			})

			rec, err := r.generateOne(ctx, gen, provider, prompt)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				slog.Warn("generation failed, skipping record",
					"model", provider.ID, "prompt", prompt.ID, "error", err)
				continue
			}

			table.Upsert(provider.ID, rec)
			if err := store.Save(path, table); err != nil {
				return nil, err
			}

			slog.Info(fmt.Sprintf("%s: lat=%dms, in=%d tok, out=%d tok, cost=$%.4f",
				rec.ID, rec.LatencyMs, rec.PromptTokens, rec.CompletionTokens, rec.CostUSD),
				"model", provider.ID)

			r.notify(ProgressEvent{
				EventType: EventRecordComplete,
				Stage:     "generate",
				Model:     provider.ID,
				PromptID:  prompt.ID,
				Current:   current,
				Total:     total,
				Details: map[string]any{
					"latency_ms": rec.LatencyMs,
					"cost_usd":   rec.CostUSD,
				},
			})
		}
	}

	r.notify(ProgressEvent{EventType: EventStageComplete, Stage: "generate", Current: current, Total: total})
	return table, nil
}

// generateOne issues a single generation call and assembles the record.
// An empty response is an error: a record with no article would poison
// the downstream stages.
func (r *GenerationRunner) generateOne(ctx context.Context, gen engine.Generator, provider config.Provider, prompt models.Prompt) (models.GenerationRecord, error) {
	instruction := prompts.ArticleInstruction(prompt, "")

	start := r.now()
	text, usage, err := gen.Generate(ctx, prompts.SystemInstruction, instruction)
	latency := r.now().Sub(start).Milliseconds()
	if err != nil {
		return models.GenerationRecord{}, err
	}
	if strings.TrimSpace(text) == "" {
		return models.GenerationRecord{}, fmt.Errorf("model returned empty response")
	}

	return models.GenerationRecord{
		ID:               prompt.ID,
		Title:            prompt.Title,
		Keywords:         prompt.Keywords,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		LatencyMs:        latency,
		CostUSD:          provider.Cost(usage.PromptTokens, usage.CompletionTokens),
		Response:         text,
	}, nil
}
