// Package engine implements the ContentGenerator capability: the
// abstract boundary between the pipeline and the model providers. Each
// capability family wraps one SDK and reports token usage either
// natively (the provider returns counts) or as a words-per-token
// estimate.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/models"
)

// Generator is the content-generation capability. Implementations fail
// by returning an error (or empty text) on unrecoverable problems; the
// caller decides whether to skip, retry, or abort.
type Generator interface {
	// Family returns the capability family identifier (see config).
	Family() string

	// Generate produces text for the given system and user instructions
	// and reports token usage for cost accounting.
	Generate(ctx context.Context, systemInstruction, userInstruction string) (string, models.Usage, error)
}

// New builds a generator for the provider's family.
func New(p config.Provider) (Generator, error) {
	switch p.Family {
	case config.FamilyAnthropic:
		return NewAnthropicGenerator(p)
	case config.FamilyGemini:
		return NewGeminiGenerator(p)
	case config.FamilyCopilot:
		return NewCopilotGenerator(p)
	case config.FamilyMock:
		return NewMockGenerator(p.ID), nil
	default:
		return nil, fmt.Errorf("unknown capability family: %s", p.Family)
	}
}

// estimateUsage approximates token usage for families that do not report
// it: whitespace-tokenized word counts divided by the words-per-token
// ratio, rounded down, with a floor of 1 token on each side to avoid
// division artifacts.
func estimateUsage(input, output string, wordsPerToken float64) models.Usage {
	wordsIn := len(strings.Fields(input))
	wordsOut := len(strings.Fields(output))

	inTokens := max(1, int(float64(wordsIn)/wordsPerToken))
	outTokens := max(1, int(float64(wordsOut)/wordsPerToken))

	return models.Usage{
		PromptTokens:     inTokens,
		CompletionTokens: outTokens,
		TotalTokens:      inTokens + outTokens,
	}
}
