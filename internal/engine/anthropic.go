package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/go-viper/mapstructure/v2"
	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/models"
)

const defaultAnthropicMaxTokens = 4096

// AnthropicParams are the family-specific provider options.
type AnthropicParams struct {
	MaxTokens   int64    `mapstructure:"max_tokens"`
	Temperature *float64 `mapstructure:"temperature"`
}

// AnthropicGenerator is a token-native generator backed by the Anthropic
// Messages API. Usage counts come directly from the provider.
type AnthropicGenerator struct {
	client anthropic.Client
	model  string
	params AnthropicParams
}

// NewAnthropicGenerator builds a generator from the provider entry,
// reading the API key from the environment.
func NewAnthropicGenerator(p config.Provider) (*AnthropicGenerator, error) {
	apiKey := os.Getenv(config.EnvKeyForFamily[config.FamilyAnthropic])
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set", config.EnvKeyForFamily[config.FamilyAnthropic])
	}

	var params AnthropicParams
	if err := mapstructure.Decode(p.Params, &params); err != nil {
		return nil, fmt.Errorf("provider %q: decoding anthropic params: %w", p.ID, err)
	}
	if params.MaxTokens == 0 {
		params.MaxTokens = defaultAnthropicMaxTokens
	}

	return &AnthropicGenerator{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  p.ModelName(),
		params: params,
	}, nil
}

// Family implements [Generator].
func (g *AnthropicGenerator) Family() string { return config.FamilyAnthropic }

// Generate implements [Generator].
func (g *AnthropicGenerator) Generate(ctx context.Context, systemInstruction, userInstruction string) (string, models.Usage, error) {
	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.params.MaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemInstruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userInstruction)),
		},
	}
	if g.params.Temperature != nil {
		req.Temperature = anthropic.Float(*g.params.Temperature)
	}

	message, err := g.client.Messages.New(ctx, req)
	if err != nil {
		return "", models.Usage{}, fmt.Errorf("anthropic API error: %w", err)
	}

	usage := models.Usage{
		PromptTokens:     int(message.Usage.InputTokens),
		CompletionTokens: int(message.Usage.OutputTokens),
		TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
	}

	for _, block := range message.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, usage, nil
		}
	}
	return "", usage, fmt.Errorf("no text content in anthropic response")
}
