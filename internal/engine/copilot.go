package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	copilot "github.com/github/copilot-sdk/go"
	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/models"
)

// CopilotGenerator runs generations through the Copilot SDK using the
// logged-in user's credentials. The SDK's event stream does not expose
// token counts, so usage is word-estimated like the gemini family.
type CopilotGenerator struct {
	client        *copilot.Client
	model         string
	wordsPerToken float64

	// NOTE: the client's autostart runs into trouble when triggered from
	// multiple goroutines, so the first Generate starts it explicitly.
	startOnce sync.Once
	startErr  error
}

// NewCopilotGenerator builds a generator from the provider entry.
func NewCopilotGenerator(p config.Provider) (*CopilotGenerator, error) {
	if p.WordsPerToken <= 0 {
		return nil, fmt.Errorf("provider %q: copilot-sdk family requires a positive words_per_token", p.ID)
	}

	client := copilot.NewClient(&copilot.ClientOptions{
		LogLevel:        "error",
		AutoStart:       copilot.Bool(false),
		UseLoggedInUser: copilot.Bool(true),
	})

	return &CopilotGenerator{
		client:        client,
		model:         p.ModelName(),
		wordsPerToken: p.WordsPerToken,
	}, nil
}

// Family implements [Generator].
func (g *CopilotGenerator) Family() string { return config.FamilyCopilot }

// Generate implements [Generator].
func (g *CopilotGenerator) Generate(ctx context.Context, systemInstruction, userInstruction string) (string, models.Usage, error) {
	g.startOnce.Do(func() {
		g.startErr = g.client.Start(ctx)
	})
	if g.startErr != nil {
		return "", models.Usage{}, fmt.Errorf("copilot failed to start: %w", g.startErr)
	}

	session, err := g.client.CreateSession(ctx, &copilot.SessionConfig{
		Model: g.model,
	})
	if err != nil {
		return "", models.Usage{}, fmt.Errorf("failed to create copilot session: %w", err)
	}

	var parts []string
	unsubscribe := session.On(func(event copilot.SessionEvent) {
		if event.Type == copilot.AssistantMessage && event.Data.Content != nil {
			parts = append(parts, *event.Data.Content)
		}
	})
	defer unsubscribe()

	prompt := systemInstruction + "\n\n" + userInstruction
	if _, err := session.SendAndWait(ctx, copilot.MessageOptions{Prompt: prompt}); err != nil {
		return "", models.Usage{}, fmt.Errorf("copilot send failed: %w", err)
	}

	text := strings.Join(parts, "")
	if text == "" {
		return "", models.Usage{}, fmt.Errorf("empty copilot response")
	}

	usage := estimateUsage(prompt, text, g.wordsPerToken)
	return text, usage, nil
}

// Shutdown stops the underlying Copilot client.
func (g *CopilotGenerator) Shutdown() error {
	return g.client.Stop()
}
