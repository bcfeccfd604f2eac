// Package reporting renders contest results: the console summary, a
// runewidth-aligned score table, and markdown/HTML report files.
package reporting

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/store"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

type modelScore struct {
	Model string
	Score float64
}

// sortedScores returns model scores sorted by score descending, with
// lexicographic model ID as the tie-break so output is deterministic.
func sortedScores(scores map[string]float64) []modelScore {
	sorted := make([]modelScore, 0, len(scores))
	for model, score := range scores {
		sorted = append(sorted, modelScore{Model: model, Score: score})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Model < sorted[j].Model
	})
	return sorted
}

// boundsRows returns the metric bounds in their canonical display order.
func boundsRows(b models.ContestBounds) []struct {
	Name   string
	Bounds models.Bounds
} {
	return []struct {
		Name   string
		Bounds models.Bounds
	}{
		{"latency_ms", b.LatencyMs},
		{"cost_usd", b.CostUSD},
		{"words_count", b.WordsCount},
		{"accuracy", b.Accuracy},
		{"safety", b.Safety},
		{"factuality", b.Factuality},
	}
}

// WriteSummary prints the contest result in the canonical console
// layout: bounds, scores in descending order, winner.
func WriteSummary(w io.Writer, result *models.ContestResult) {
	fmt.Fprintf(w, "\n=== Contest Results ===\n")

	fmt.Fprintf(w, "\nBounds for each metric:\n")
	for _, row := range boundsRows(result.Bounds) {
		fmt.Fprintf(w, "%s: min=%.2f, max=%.2f\n", row.Name, row.Bounds.Min, row.Bounds.Max)
	}

	fmt.Fprintf(w, "\nModel Scores:\n")
	for _, entry := range sortedScores(result.ModelScores) {
		fmt.Fprintf(w, "%s: %.4f\n", entry.Model, entry.Score)
	}

	fmt.Fprintf(w, "\n🏆 Winner: %s with score %.4f\n", result.Winner.Model, result.Winner.Score)
}

// WriteScoreTable prints the scores as an aligned two-column table.
// Column widths use terminal display width, not byte length, so wide
// characters in model IDs keep the table straight.
func WriteScoreTable(w io.Writer, result *models.ContestResult) {
	const scoreHeader = "SCORE"

	nameWidth := runewidth.StringWidth("MODEL")
	for model := range result.ModelScores {
		if mw := runewidth.StringWidth(model); mw > nameWidth {
			nameWidth = mw
		}
	}

	fmt.Fprintf(w, "%s  %s\n", padRight("MODEL", nameWidth), scoreHeader)
	for _, entry := range sortedScores(result.ModelScores) {
		marker := ""
		if entry.Model == result.Winner.Model {
			marker = "  🏆"
		}
		fmt.Fprintf(w, "%s  %.4f%s\n", padRight(entry.Model, nameWidth), entry.Score, marker)
	}
}

// WriteUsage prints per-model token and cost totals from a generation
// table, with thousands separators on the big numbers.
func WriteUsage(w io.Writer, table store.Table[models.GenerationRecord]) {
	fmt.Fprintf(w, "\nUsage by model:\n")
	for _, model := range table.Models() {
		tokens := 0
		cost := 0.0
		for _, rec := range table[model] {
			tokens += rec.TotalTokens
			cost += rec.CostUSD
		}
		printer.Fprintf(w, "%s: %d articles, %d tokens, $%.4f\n",
			model, len(table[model]), tokens, cost)
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
