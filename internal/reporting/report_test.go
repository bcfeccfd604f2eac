package reporting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleResult(), time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC))

	assert.Contains(t, md, "# Contest Results")
	assert.Contains(t, md, "**model-a** with score 0.6412")
	assert.Contains(t, md, "| model-b | 0.4203 |")
	assert.Contains(t, md, "| latency_ms | 100.00 | 900.00 |")
	assert.Contains(t, md, "| accuracy | 0.30 |")
	assert.Contains(t, md, "2025-08-31T12:00:00Z")
}

func TestHTML(t *testing.T) {
	html, err := HTML("# Title\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	mdPath, htmlPath, err := WriteFiles(dir, sampleResult(), time.Now())
	require.NoError(t, err)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Contest Results")

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Contest Results</h1>")
}
