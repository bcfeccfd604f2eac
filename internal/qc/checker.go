// Package qc implements the live quality-control loop: draft an
// article, have a checker from another capability family render a
// structured verdict, and revise once using the checker's tip. Every
// terminal state is persisted as a timestamped snapshot file.
package qc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/engine"
	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const checkerSystemInstruction = "You are a content quality checker. " +
	"Respond only with the requested JSON object."

// verdictSchema constrains the checker's reply: both fields required,
// verdict restricted to the two recognized values.
const verdictSchema = `{
  "type": "object",
  "properties": {
    "verdict": {"type": "string", "enum": ["APPROVED", "REJECTED"]},
    "tip": {"type": "string"}
  },
  "required": ["verdict", "tip"]
}`

// Checker renders a structured quality verdict for a draft article.
type Checker interface {
	Family() string
	Check(ctx context.Context, content string) (models.QCVerdict, error)
}

// generatorChecker adapts a content generator into a checker by fixing
// the verdict prompt and validating the reply against the verdict
// schema.
type generatorChecker struct {
	gen    engine.Generator
	schema *jsonschema.Schema
}

// NewChecker builds a checker backed by the given generator.
func NewChecker(gen engine.Generator) (Checker, error) {
	schema, err := compileVerdictSchema()
	if err != nil {
		return nil, err
	}
	return &generatorChecker{gen: gen, schema: schema}, nil
}

func compileVerdictSchema() (*jsonschema.Schema, error) {
	var schemaValue any
	if err := json.Unmarshal([]byte(verdictSchema), &schemaValue); err != nil {
		return nil, fmt.Errorf("parsing verdict schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("verdict.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding verdict schema resource: %w", err)
	}
	schema, err := compiler.Compile("verdict.json")
	if err != nil {
		return nil, fmt.Errorf("compiling verdict schema: %w", err)
	}
	return schema, nil
}

// Family implements [Checker].
func (c *generatorChecker) Family() string { return c.gen.Family() }

// Check implements [Checker]. The reply must be (or contain) a JSON
// object matching the verdict schema; anything else is an error the
// caller may retry.
func (c *generatorChecker) Check(ctx context.Context, content string) (models.QCVerdict, error) {
	if strings.TrimSpace(content) == "" {
		return models.QCVerdict{}, fmt.Errorf("empty content provided for quality check")
	}

	text, _, err := c.gen.Generate(ctx, checkerSystemInstruction, checkPrompt(content))
	if err != nil {
		return models.QCVerdict{}, err
	}

	return ParseVerdict(text, c.schema)
}

func checkPrompt(content string) string {
	return fmt.Sprintf(`You are a content quality checker. Analyze this draft and provide a JSON response with:
1. A verdict: "APPROVED" if the content is clear, factual, and safe (all scores >=4), otherwise "REJECTED"
2. A brief tip for improvement if rejected

Format your response exactly like this JSON:
{
    "verdict": "APPROVED" or "REJECTED",
    "tip": "your improvement suggestion"
}

Draft:
%s`, content)
}

// ParseVerdict extracts and validates a verdict object from a checker
// reply, tolerating markdown code fences around the JSON.
func ParseVerdict(text string, schema *jsonschema.Schema) (models.QCVerdict, error) {
	raw := stripCodeFence(text)

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return models.QCVerdict{}, fmt.Errorf("checker reply is not valid JSON: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return models.QCVerdict{}, fmt.Errorf("checker reply failed schema validation: %w", err)
	}

	var verdict models.QCVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return models.QCVerdict{}, err
	}
	return verdict, nil
}

func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
