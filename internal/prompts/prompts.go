// Package prompts holds the fixed instruction templates shared by the
// generation stage and the QC revise loop. The user instruction is built
// deterministically from the prompt's title and keywords so that re-runs
// send identical requests.
package prompts

import (
	"fmt"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/models"
)

// SystemInstruction is the fixed system message for article generation.
const SystemInstruction = "You are an expert tech writer with a friendly, witty personality. " +
	"Produce fact-checked, safe, and highly accurate articles."

// ArticleInstruction builds the per-prompt user instruction. When tip is
// non-empty (a QC improvement suggestion), it is appended verbatim as a
// final constraint.
func ArticleInstruction(p models.Prompt, tip string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %q\n", p.Title)
	sb.WriteString("- Write a 1,500 - 2,500 word article.\n")
	sb.WriteString("- Cite at least two reputable sources with URLs.\n")
	fmt.Fprintf(&sb, "- Cover these keywords: %s.\n", strings.Join(p.Keywords, ", "))
	sb.WriteString("- Avoid unsafe, biased, or sensitive content.\n")
	sb.WriteString("- Use a warm, conversational tone with a light joke or analogy.")
	if tip != "" {
		sb.WriteString("\n- ")
		sb.WriteString(tip)
	}
	return sb.String()
}
