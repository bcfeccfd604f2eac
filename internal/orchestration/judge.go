package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/judging"
	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/store"
)

// JudgeRunner runs the judging stage. Each model's articles are scored
// by a judge from a different capability family; a delay between judge
// calls keeps the run inside provider rate limits. Every judgment is
// persisted immediately.
type JudgeRunner struct {
	notifier

	cfg    *config.Config
	roster []judging.Judge

	missingOnly bool

	// sleep is overridable in tests; defaults to a context-aware wait.
	sleep func(ctx context.Context, d time.Duration) error
}

// JudgeOption configures a JudgeRunner.
type JudgeOption func(*JudgeRunner)

// WithJudges replaces the judge roster built from configuration.
func WithJudges(roster []judging.Judge) JudgeOption {
	return func(r *JudgeRunner) {
		r.roster = roster
	}
}

// WithJudgeMissingOnly skips records that already have a judgment.
func WithJudgeMissingOnly(missingOnly bool) JudgeOption {
	return func(r *JudgeRunner) {
		r.missingOnly = missingOnly
	}
}

// WithSleeper replaces the inter-call delay function.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) JudgeOption {
	return func(r *JudgeRunner) {
		r.sleep = sleep
	}
}

// NewJudgeRunner creates a judging stage runner. Unless a roster is
// injected, judges are built from the configuration's judge list.
func NewJudgeRunner(cfg *config.Config, opts ...JudgeOption) (*JudgeRunner, error) {
	r := &JudgeRunner{
		cfg:   cfg,
		sleep: sleepCtx,
	}
	for _, o := range opts {
		o(r)
	}

	if r.roster == nil {
		for _, spec := range cfg.Judges {
			judge, err := judging.New(spec)
			if err != nil {
				return nil, err
			}
			r.roster = append(r.roster, judge)
		}
	}
	if len(r.roster) == 0 {
		return nil, fmt.Errorf("no judges configured")
	}
	return r, nil
}

// Run judges every analyzed record and returns the merged table.
func (r *JudgeRunner) Run(ctx context.Context) (store.Table[models.JudgmentRecord], error) {
	var families []string
	for _, judge := range r.roster {
		families = append(families, judge.Family())
	}
	if err := config.RequireCredentials(families...); err != nil {
		return nil, err
	}

	source, err := store.Load[models.AnalysisRecord](r.cfg.AnalysisStorePath())
	if err != nil {
		return nil, err
	}
	if source.Len() == 0 {
		return nil, fmt.Errorf("analysis store is empty, run analyze first")
	}

	path := r.cfg.JudgmentStorePath()
	table, err := store.Load[models.JudgmentRecord](path)
	if err != nil {
		return nil, err
	}

	delay := time.Duration(r.cfg.JudgeDelayMs) * time.Millisecond
	total := source.Len()
	r.notify(ProgressEvent{EventType: EventStageStart, Stage: "judge", Total: total})

	current := 0
	for _, model := range source.Models() {
		judge, err := r.judgeFor(model)
		if err != nil {
			return nil, err
		}
		slog.Info("judging articles", "model", model, "judge_family", judge.Family())

		for _, rec := range source[model] {
			current++
			if r.missingOnly {
				if _, ok := table.Lookup(model, rec.ID); ok {
					r.notify(ProgressEvent{
						EventType: EventRecordSkipped,
						Stage:     "judge",
						Model:     model,
						PromptID:  rec.ID,
						Current:   current,
						Total:     total,
					})
					continue
				}
			}

			judgment := r.judgeOne(ctx, judge, model, rec)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			table.Upsert(model, models.JudgmentRecord{
				AnalysisRecord: rec,
				Accuracy:       judgment.Accuracy,
				Safety:         judgment.Safety,
				Factuality:     judgment.Factuality,
				Tone:           judgment.Tone,
			})
			if err := store.Save(path, table); err != nil {
				return nil, err
			}

			slog.Info(fmt.Sprintf("%s: accuracy=%d, safety=%d, factuality=%d, tone=%s",
				rec.ID, judgment.Accuracy, judgment.Safety, judgment.Factuality, judgment.Tone),
				"model", model)

			r.notify(ProgressEvent{
				EventType: EventRecordComplete,
				Stage:     "judge",
				Model:     model,
				PromptID:  rec.ID,
				Current:   current,
				Total:     total,
			})

			if current < total {
				if err := r.sleep(ctx, delay); err != nil {
					return nil, err
				}
			}
		}
	}

	r.notify(ProgressEvent{EventType: EventStageComplete, Stage: "judge", Current: current, Total: total})
	return table, nil
}

// judgeFor selects the judge for a model under the cross-family rule.
// A model absent from the provider roster (records left over from an
// earlier configuration) is judged by the first roster judge.
func (r *JudgeRunner) judgeFor(model string) (judging.Judge, error) {
	family := ""
	if provider, ok := r.cfg.ProviderByID(model); ok {
		family = provider.Family
	} else {
		slog.Warn("model not in provider roster, using first judge", "model", model)
	}
	return judging.Select(family, r.roster)
}

// judgeOne scores one article. Judge failures and unparseable replies
// degrade to the sentinel judgment (zero scores, unknown tone) so a
// failing judge never blocks the stage.
func (r *JudgeRunner) judgeOne(ctx context.Context, judge judging.Judge, model string, rec models.AnalysisRecord) judging.Judgment {
	reply, err := judge.Judge(ctx, rec.Response)
	if err != nil {
		slog.Warn("judge call failed", "model", model, "prompt", rec.ID, "error", err)
		return judging.Failed()
	}

	judgment, ignored := judging.Parse(reply)
	for _, line := range ignored {
		slog.Warn("ignoring unrecognized judge output", "model", model, "prompt", rec.ID, "line", line)
	}
	return judgment
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
