package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/models"
	genai "google.golang.org/genai"
)

const (
	defaultGeminiMaxOutputTokens = 2000
	defaultGeminiTemperature     = 0.7
)

// GeminiParams are the family-specific provider options.
type GeminiParams struct {
	MaxOutputTokens int32    `mapstructure:"max_output_tokens"`
	Temperature     *float32 `mapstructure:"temperature"`
}

// GeminiGenerator is a word-based generator backed by the genai SDK.
// Token usage is estimated from whitespace word counts and the
// provider's words-per-token ratio.
type GeminiGenerator struct {
	client        *genai.Client
	model         string
	wordsPerToken float64
	params        GeminiParams
}

// NewGeminiGenerator builds a generator from the provider entry.
func NewGeminiGenerator(p config.Provider) (*GeminiGenerator, error) {
	apiKey := os.Getenv(config.EnvKeyForFamily[config.FamilyGemini])
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set", config.EnvKeyForFamily[config.FamilyGemini])
	}

	var params GeminiParams
	if err := mapstructure.Decode(p.Params, &params); err != nil {
		return nil, fmt.Errorf("provider %q: decoding gemini params: %w", p.ID, err)
	}
	if params.MaxOutputTokens == 0 {
		params.MaxOutputTokens = defaultGeminiMaxOutputTokens
	}
	if params.Temperature == nil {
		t := float32(defaultGeminiTemperature)
		params.Temperature = &t
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiGenerator{
		client:        client,
		model:         p.ModelName(),
		wordsPerToken: p.WordsPerToken,
		params:        params,
	}, nil
}

// Family implements [Generator].
func (g *GeminiGenerator) Family() string { return config.FamilyGemini }

// Generate implements [Generator].
func (g *GeminiGenerator) Generate(ctx context.Context, systemInstruction, userInstruction string) (string, models.Usage, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{
			{Text: systemInstruction},
			{Text: userInstruction},
		}}},
		&genai.GenerateContentConfig{
			MaxOutputTokens: g.params.MaxOutputTokens,
			Temperature:     g.params.Temperature,
		},
	)
	if err != nil {
		return "", models.Usage{}, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", models.Usage{}, fmt.Errorf("empty gemini response")
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	usage := estimateUsage(systemInstruction+" "+userInstruction, text, g.wordsPerToken)
	return text, usage, nil
}
