package prompts

import (
	"strings"
	"testing"

	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestArticleInstruction(t *testing.T) {
	p := models.Prompt{
		ID:       "P1",
		Title:    "Remote Work: The New Normal",
		Keywords: []string{"hybrid teams", "digital nomads"},
	}

	instruction := ArticleInstruction(p, "")
	assert.Contains(t, instruction, `Title: "Remote Work: The New Normal"`)
	assert.Contains(t, instruction, "- Cover these keywords: hybrid teams, digital nomads.")
	assert.Contains(t, instruction, "- Write a 1,500 - 2,500 word article.")
	assert.False(t, strings.HasSuffix(instruction, "\n"), "no trailing newline without a tip")
}

func TestArticleInstruction_TipAppendedVerbatim(t *testing.T) {
	p := models.Prompt{ID: "P1", Title: "T", Keywords: []string{"k"}}
	tip := "Add a concrete code example for each concept."

	instruction := ArticleInstruction(p, tip)
	assert.True(t, strings.HasSuffix(instruction, "- "+tip),
		"tip must be the final bullet, verbatim")

	without := ArticleInstruction(p, "")
	assert.Equal(t, without+"\n- "+tip, instruction,
		"a tip only appends, never alters the base instruction")
}

func TestArticleInstruction_Deterministic(t *testing.T) {
	p := models.Prompt{ID: "P1", Title: "T", Keywords: []string{"a", "b"}}
	assert.Equal(t, ArticleInstruction(p, ""), ArticleInstruction(p, ""))
}
