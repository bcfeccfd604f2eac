package engine

import (
	"context"
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/models"
)

// MockGenerator is a deterministic in-process generator for tests and
// dry runs. Output and usage depend only on the inputs.
type MockGenerator struct {
	id string

	// GenerateFunc, when set, overrides the default canned behavior.
	GenerateFunc func(ctx context.Context, systemInstruction, userInstruction string) (string, models.Usage, error)
}

// NewMockGenerator creates a mock generator.
func NewMockGenerator(id string) *MockGenerator {
	return &MockGenerator{id: id}
}

// Family implements [Generator].
func (m *MockGenerator) Family() string { return config.FamilyMock }

// Generate implements [Generator].
func (m *MockGenerator) Generate(ctx context.Context, systemInstruction, userInstruction string) (string, models.Usage, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemInstruction, userInstruction)
	}

	text := fmt.Sprintf("Mock article from %s.\n\n%s", m.id, userInstruction)
	return text, estimateUsage(systemInstruction+" "+userInstruction, text, 0.75), nil
}
