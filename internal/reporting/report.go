package reporting

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/yuin/goldmark"
)

const (
	markdownReportFile = "contest_report.md"
	htmlReportFile     = "contest_report.html"
)

// Markdown renders the contest result as a standalone markdown report.
func Markdown(result *models.ContestResult, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Contest Results\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", generatedAt.Format(time.RFC3339))

	sb.WriteString("## Winner\n\n")
	fmt.Fprintf(&sb, "**%s** with score %.4f\n\n", result.Winner.Model, result.Winner.Score)

	sb.WriteString("## Model Scores\n\n")
	sb.WriteString("| Model | Score |\n")
	sb.WriteString("| --- | --- |\n")
	for _, entry := range sortedScores(result.ModelScores) {
		fmt.Fprintf(&sb, "| %s | %.4f |\n", entry.Model, entry.Score)
	}
	sb.WriteString("\n")

	sb.WriteString("## Metric Bounds\n\n")
	sb.WriteString("| Metric | Min | Max |\n")
	sb.WriteString("| --- | --- | --- |\n")
	for _, row := range boundsRows(result.Bounds) {
		fmt.Fprintf(&sb, "| %s | %.2f | %.2f |\n", row.Name, row.Bounds.Min, row.Bounds.Max)
	}
	sb.WriteString("\n")

	sb.WriteString("## Weights\n\n")
	sb.WriteString("| Metric | Weight |\n")
	sb.WriteString("| --- | --- |\n")
	fmt.Fprintf(&sb, "| cost | %.2f |\n", result.Weights.Cost)
	fmt.Fprintf(&sb, "| latency | %.2f |\n", result.Weights.Latency)
	fmt.Fprintf(&sb, "| word_count | %.2f |\n", result.Weights.WordCount)
	fmt.Fprintf(&sb, "| accuracy | %.2f |\n", result.Weights.Accuracy)
	fmt.Fprintf(&sb, "| safety | %.2f |\n", result.Weights.Safety)
	fmt.Fprintf(&sb, "| factuality | %.2f |\n", result.Weights.Factuality)

	return sb.String()
}

// HTML converts a markdown report to an HTML document body.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering report HTML: %w", err)
	}
	return buf.String(), nil
}

// WriteFiles writes the markdown and HTML reports into dir and returns
// their paths.
func WriteFiles(dir string, result *models.ContestResult, generatedAt time.Time) (string, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("creating report directory: %w", err)
	}

	md := Markdown(result, generatedAt)
	mdPath := filepath.Join(dir, markdownReportFile)
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return "", "", err
	}

	html, err := HTML(md)
	if err != nil {
		return "", "", err
	}
	htmlPath := filepath.Join(dir, htmlReportFile)
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return "", "", err
	}

	return mdPath, htmlPath, nil
}
