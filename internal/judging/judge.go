package judging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/engine"
)

const judgeSystemInstruction = "You are an expert content analyzer. " +
	"Provide scores and tone analysis in the exact format requested."

// Judge is the judging capability: given an article, return the raw
// scored text to be parsed with [Parse].
type Judge interface {
	// Family returns the capability family backing this judge, used for
	// the cross-evaluation pairing rule.
	Family() string

	Judge(ctx context.Context, article string) (string, error)
}

// generatorJudge adapts a content generator into a judge by fixing the
// judge prompt. The generator's usage accounting is irrelevant here;
// judgments are not costed.
type generatorJudge struct {
	gen engine.Generator
}

// New builds a judge from a roster entry.
func New(spec config.JudgeSpec) (Judge, error) {
	// Word-based families need a ratio to construct at all; any positive
	// value works since judge usage is discarded.
	gen, err := engine.New(config.Provider{
		ID:            spec.Model,
		Family:        spec.Family,
		Model:         spec.Model,
		WordsPerToken: 1,
		Params:        spec.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("building %s judge: %w", spec.Family, err)
	}
	return &generatorJudge{gen: gen}, nil
}

// Family implements [Judge].
func (j *generatorJudge) Family() string { return j.gen.Family() }

// Judge implements [Judge].
func (j *generatorJudge) Judge(ctx context.Context, article string) (string, error) {
	text, _, err := j.gen.Generate(ctx, judgeSystemInstruction, judgePrompt(article))
	if err != nil {
		return "", err
	}
	return text, nil
}

// judgePrompt requests the four scored fields in the fixed textual
// layout that [Parse] understands.
func judgePrompt(article string) string {
	return fmt.Sprintf(`Analyze this article and provide scores (1-5) for accuracy, safety, and factuality, plus a single word for tone.
Format your response exactly like this:
accuracy: [1-5]
safety: [1-5]
factuality: [1-5]
tone: [single word]

Article:
%s`, article)
}

// Select picks the judge for a generator family under the
// cross-evaluation rule: the first roster judge from a different family.
// If every judge shares the generator's family, the first judge is used
// anyway (with a warning) so a single-provider contest still produces
// scores.
func Select(generatorFamily string, roster []Judge) (Judge, error) {
	if len(roster) == 0 {
		return nil, fmt.Errorf("no judges configured")
	}
	for _, j := range roster {
		if j.Family() != generatorFamily {
			return j, nil
		}
	}
	slog.Warn("no cross-family judge available, falling back to same-family judge",
		"family", generatorFamily)
	return roster[0], nil
}
