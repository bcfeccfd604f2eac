package orchestration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-ai/inkwell/internal/analysis"
	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/store"
)

// AnalysisRunner runs the analysis stage: word counts and link checks
// over every generation record. Analysis is pure computation plus HTTP
// probes, so the store is written once at the end rather than after
// every record.
type AnalysisRunner struct {
	notifier

	cfg     *config.Config
	checker analysis.LinkChecker

	// workers bounds concurrent URL probes per record.
	workers int

	missingOnly bool
}

// AnalysisOption configures an AnalysisRunner.
type AnalysisOption func(*AnalysisRunner)

// WithLinkChecker replaces the URL prober.
func WithLinkChecker(checker analysis.LinkChecker) AnalysisOption {
	return func(r *AnalysisRunner) {
		r.checker = checker
	}
}

// WithProbeWorkers sets the per-record probe pool size.
func WithProbeWorkers(workers int) AnalysisOption {
	return func(r *AnalysisRunner) {
		r.workers = workers
	}
}

// WithAnalysisMissingOnly skips records that already have analysis
// results.
func WithAnalysisMissingOnly(missingOnly bool) AnalysisOption {
	return func(r *AnalysisRunner) {
		r.missingOnly = missingOnly
	}
}

// NewAnalysisRunner creates an analysis stage runner.
func NewAnalysisRunner(cfg *config.Config, opts ...AnalysisOption) *AnalysisRunner {
	r := &AnalysisRunner{
		cfg:     cfg,
		checker: analysis.NewHTTPLinkChecker(analysis.DefaultProbeTimeout),
		workers: analysis.DefaultProbeWorkers,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run analyzes every generation record and returns the merged table.
func (r *AnalysisRunner) Run(ctx context.Context) (store.Table[models.AnalysisRecord], error) {
	source, err := store.Load[models.GenerationRecord](r.cfg.GenerationStorePath())
	if err != nil {
		return nil, err
	}
	if source.Len() == 0 {
		return nil, fmt.Errorf("generation store is empty, run generate first")
	}

	path := r.cfg.AnalysisStorePath()
	table, err := store.Load[models.AnalysisRecord](path)
	if err != nil {
		return nil, err
	}

	total := source.Len()
	r.notify(ProgressEvent{EventType: EventStageStart, Stage: "analyze", Total: total})

	current := 0
	for _, model := range source.Models() {
		slog.Info("analyzing articles", "model", model, "count", len(source[model]))
		for _, rec := range source[model] {
			current++
			if r.missingOnly {
				if _, ok := table.Lookup(model, rec.ID); ok {
					r.notify(ProgressEvent{
						EventType: EventRecordSkipped,
						Stage:     "analyze",
						Model:     model,
						PromptID:  rec.ID,
						Current:   current,
						Total:     total,
					})
					continue
				}
			}

			analyzed := r.analyzeOne(ctx, model, rec)
			table.Upsert(model, analyzed)

			r.notify(ProgressEvent{
				EventType: EventRecordComplete,
				Stage:     "analyze",
				Model:     model,
				PromptID:  rec.ID,
				Current:   current,
				Total:     total,
				Details: map[string]any{
					"words_count":  analyzed.WordsCount,
					"broken_links": len(analyzed.BrokenLinks),
				},
			})
		}
	}

	if err := store.Save(path, table); err != nil {
		return nil, err
	}

	r.notify(ProgressEvent{EventType: EventStageComplete, Stage: "analyze", Current: current, Total: total})
	return table, nil
}

func (r *AnalysisRunner) analyzeOne(ctx context.Context, model string, rec models.GenerationRecord) models.AnalysisRecord {
	words := analysis.CountWords(rec.Response)

	urls := analysis.ExtractURLs(rec.Response)
	results := analysis.CheckURLs(ctx, r.checker, urls, r.workers)
	broken := analysis.BrokenLinks(results)

	slog.Info(fmt.Sprintf("%s: %d words, %d urls, %d broken",
		rec.ID, words, len(urls), len(broken)),
		"model", model)

	return models.AnalysisRecord{
		GenerationRecord: rec,
		WordsCount:       words,
		BrokenLinks:      broken,
	}
}
