package qc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/inkwell-ai/inkwell/internal/engine"
	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/prompts"
	"github.com/inkwell-ai/inkwell/internal/retrypolicy"
	"github.com/inkwell-ai/inkwell/internal/store"
)

// snapshotTimeLayout produces timestamps like 20250831_142233, used both
// inside the snapshot and in its file name.
const snapshotTimeLayout = "20060102_150405"

// Runner drives one quality-control run: draft, check, and at most one
// revision pass guided by the checker's tip.
type Runner struct {
	Drafter    engine.Generator
	Checker    Checker
	Prompt     models.Prompt
	ResultsDir string

	// Retry applies to both drafting and checking.
	Retry retrypolicy.Policy

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// Outcome reports where a run's snapshot landed and what it contains.
type Outcome struct {
	Snapshot models.QCSnapshot
	Path     string
}

// Run executes the revise loop and persists the terminal snapshot.
//
// A failure to produce the initial draft or its verdict aborts the run
// with an error and no snapshot. Once a verdict exists, every terminal
// state is persisted: approved, approved_revised, rejected_revised, or
// rejected_no_revision when the revision could not be generated.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	slog.Info("generating initial article", "prompt", r.Prompt.ID, "model", r.Drafter.Family())
	content, err := r.draft(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("generating initial content: %w", err)
	}

	slog.Info("performing quality check", "checker", r.Checker.Family())
	verdict, err := r.check(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("checking initial content: %w", err)
	}

	if verdict.Approved() {
		slog.Info("article approved on first attempt")
		return r.save(content, verdict, models.QCApproved)
	}

	slog.Info("article rejected, revising", "tip", verdict.Tip)
	revised, err := r.draft(ctx, verdict.Tip)
	if err != nil {
		// The original draft and verdict are still worth keeping.
		slog.Error("failed to generate revised content", "error", err)
		return r.save(content, verdict, models.QCRejectedNoRevision)
	}

	revisedVerdict, err := r.check(ctx, revised)
	if err != nil {
		return nil, fmt.Errorf("checking revised content: %w", err)
	}

	status := models.QCRejectedRevised
	if revisedVerdict.Approved() {
		status = models.QCApprovedRevised
	}
	slog.Info("revised article checked", "status", status)
	return r.save(revised, revisedVerdict, status)
}

// draft generates article content, treating an empty reply as a
// retryable failure. tip, when non-empty, is the checker's improvement
// suggestion from the previous round.
func (r *Runner) draft(ctx context.Context, tip string) (string, error) {
	instruction := prompts.ArticleInstruction(r.Prompt, tip)

	var content string
	err := r.Retry.Do(ctx, "generate article", func(ctx context.Context) error {
		text, _, err := r.Drafter.Generate(ctx, prompts.SystemInstruction, instruction)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("model returned empty content")
		}
		content = text
		return nil
	})
	return content, err
}

func (r *Runner) check(ctx context.Context, content string) (models.QCVerdict, error) {
	var verdict models.QCVerdict
	err := r.Retry.Do(ctx, "quality check", func(ctx context.Context) error {
		v, err := r.Checker.Check(ctx, content)
		if err != nil {
			return err
		}
		verdict = v
		return nil
	})
	return verdict, err
}

func (r *Runner) save(content string, verdict models.QCVerdict, status models.QCStatus) (*Outcome, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	timestamp := now().Format(snapshotTimeLayout)

	snapshot := models.QCSnapshot{
		Timestamp: timestamp,
		Content:   content,
		QCResult:  verdict,
		Status:    status,
	}

	path := filepath.Join(r.ResultsDir, fmt.Sprintf("article_%s.json", timestamp))
	if err := store.SaveSnapshot(path, snapshot); err != nil {
		return nil, fmt.Errorf("saving qc snapshot: %w", err)
	}
	slog.Info("results saved", "path", path, "status", status)

	return &Outcome{Snapshot: snapshot, Path: path}, nil
}
