// Package config loads and validates the contest configuration file
// (inkwell.yaml): providers with their pricing, the judge roster, the
// prompt set, metric weights, and pipeline paths. The configuration is
// an explicit immutable object passed into the pipeline entry points,
// not process-wide state.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/inkwell-ai/inkwell/internal/models"
	"gopkg.in/yaml.v3"
)

// Default values for contest configuration. DefaultConfig references
// them and no other code should duplicate them.
const (
	DefaultConfigFile = "inkwell.yaml"
	DefaultResultsDir = "raw_outputs"

	DefaultJudgeDelayMs = 1000

	GenerationStoreFile = "content_with_costs.json"
	AnalysisStoreFile   = "content_with_analysis.json"
	JudgmentStoreFile   = "content_with_judgment.json"
	ContestResultFile   = "contest_results.json"
	QCResultsDir        = "qc_results"
)

// Capability family identifiers. A family determines which SDK backs a
// provider and how its token usage is accounted.
const (
	FamilyAnthropic = "anthropic" // token-native usage from the API
	FamilyGemini    = "gemini"    // usage estimated via words-per-token
	FamilyCopilot   = "copilot-sdk"
	FamilyMock      = "mock"
)

// EnvKeyForFamily maps a capability family to the environment variable
// holding its credential. Families without an entry (copilot-sdk, mock)
// authenticate out of band or not at all.
var EnvKeyForFamily = map[string]string{
	FamilyAnthropic: "ANTHROPIC_API_KEY",
	FamilyGemini:    "GEMINI_API_KEY",
}

// Provider is one contestant model plus its accounting parameters.
type Provider struct {
	// ID is the model identifier used as the store key.
	ID string `yaml:"id"`

	// Family selects the backing SDK (anthropic, gemini, copilot-sdk, mock).
	Family string `yaml:"family"`

	// Model is the provider-side model name. Defaults to ID.
	Model string `yaml:"model,omitempty"`

	// InputRate and OutputRate are prices in dollars per million tokens.
	InputRate  float64 `yaml:"input_rate"`
	OutputRate float64 `yaml:"output_rate"`

	// WordsPerToken is the estimation ratio for word-based families.
	WordsPerToken float64 `yaml:"words_per_token,omitempty"`

	// Params carries family-specific options (e.g. max_tokens,
	// temperature), decoded by the engine for its family.
	Params map[string]any `yaml:"params,omitempty"`
}

// ModelName returns the provider-side model name, falling back to ID.
func (p Provider) ModelName() string {
	if p.Model != "" {
		return p.Model
	}
	return p.ID
}

// Cost computes the dollar cost for a token count at this provider's
// rates, rounded to 4 decimal places:
//
//	(prompt/1e6)*input_rate + (completion/1e6)*output_rate
func (p Provider) Cost(promptTokens, completionTokens int) float64 {
	cost := float64(promptTokens)/1e6*p.InputRate + float64(completionTokens)/1e6*p.OutputRate
	return math.Round(cost*1e4) / 1e4
}

// JudgeSpec is one entry in the judge roster. Judges are matched
// cross-family against generators: a model's output is judged by a
// judge from a different family.
type JudgeSpec struct {
	Family string         `yaml:"family"`
	Model  string         `yaml:"model"`
	Params map[string]any `yaml:"params,omitempty"`
}

// QCConfig configures the standalone quality-control revise loop.
type QCConfig struct {
	// Provider is the ID of the provider used for drafting and revising.
	Provider string `yaml:"provider,omitempty"`

	// CheckerFamily selects which judge-roster family performs the
	// quality check.
	CheckerFamily string `yaml:"checker_family,omitempty"`

	Prompt models.Prompt `yaml:"prompt,omitempty"`
}

// Config is the top-level contest configuration.
type Config struct {
	ResultsDir   string          `yaml:"results_dir,omitempty"`
	JudgeDelayMs int             `yaml:"judge_delay_ms,omitempty"`
	Providers    []Provider      `yaml:"providers"`
	Judges       []JudgeSpec     `yaml:"judges"`
	Weights      models.Weights  `yaml:"weights,omitempty"`
	Prompts      []models.Prompt `yaml:"prompts"`
	QC           QCConfig        `yaml:"qc,omitempty"`
}

// DefaultConfig returns a configuration populated with the standard
// prompt set, weights, and paths. Provider and judge rosters are left
// for the user (or `inkwell init`) to fill in.
func DefaultConfig() *Config {
	return &Config{
		ResultsDir:   DefaultResultsDir,
		JudgeDelayMs: DefaultJudgeDelayMs,
		Weights:      models.DefaultWeights(),
		Prompts:      DefaultPrompts(),
		QC: QCConfig{
			Prompt: models.Prompt{
				ID:    "QC1",
				Title: "Introduction to Python Object Oriented Programming",
				Keywords: []string{
					"python", "object oriented programming", "OOP",
					"classes", "objects", "inheritance", "polymorphism", "encapsulation",
				},
			},
		},
	}
}

// DefaultPrompts returns the standard five-article prompt set.
func DefaultPrompts() []models.Prompt {
	return []models.Prompt{
		{
			ID:    "P1",
			Title: "5 Trends in AI-Assisted Learning",
			Keywords: []string{
				"personalized learning", "adaptive quizzes", "AI tutoring",
				"learning analytics", "student engagement",
			},
		},
		{
			ID:    "P2",
			Title: "Remote Work: The New Normal",
			Keywords: []string{
				"hybrid teams", "virtual collaboration", "digital nomads",
				"work-life balance", "productivity tools",
			},
		},
		{
			ID:    "P3",
			Title: "Blockchain Adoption in Small Business",
			Keywords: []string{
				"supply chain", "smart contracts", "transaction fees",
				"decentralization", "security",
			},
		},
		{
			ID:    "P4",
			Title: "Sustainable Tech: Greener Data Centers",
			Keywords: []string{
				"energy efficiency", "liquid cooling", "renewable power",
				"carbon footprint", "PUE (Power Usage Effectiveness)",
			},
		},
		{
			ID:    "P5",
			Title: "Cybersecurity Trends for 2025",
			Keywords: []string{
				"zero trust", "AI threat detection", "ransomware",
				"IoT security", "data privacy",
			},
		},
	}
}

// Load reads a config file and fills in defaults for omitted fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ResultsDir == "" {
		c.ResultsDir = DefaultResultsDir
	}
	if c.JudgeDelayMs == 0 {
		c.JudgeDelayMs = DefaultJudgeDelayMs
	}
	if (c.Weights == models.Weights{}) {
		c.Weights = models.DefaultWeights()
	}
	if len(c.Prompts) == 0 {
		c.Prompts = DefaultPrompts()
	}
}

// Validate checks structural problems that would make a run meaningless.
// A weight sum away from 1.0 is only warned about: the scoring math is
// well-defined for any weights, and reweighting experiments are a
// supported use of the snapshot.
func (c *Config) Validate() error {
	seenProviders := map[string]bool{}
	for _, p := range c.Providers {
		if p.ID == "" {
			return fmt.Errorf("provider with empty id")
		}
		if seenProviders[p.ID] {
			return fmt.Errorf("duplicate provider id %q", p.ID)
		}
		seenProviders[p.ID] = true

		switch p.Family {
		case FamilyAnthropic, FamilyMock:
		case FamilyGemini, FamilyCopilot:
			// Word-estimated families cannot account usage without a ratio.
			if p.WordsPerToken <= 0 {
				return fmt.Errorf("provider %q: family %q requires a positive words_per_token", p.ID, p.Family)
			}
		default:
			return fmt.Errorf("provider %q: unknown family %q", p.ID, p.Family)
		}

		if p.InputRate < 0 || p.OutputRate < 0 {
			return fmt.Errorf("provider %q: rates must not be negative", p.ID)
		}
	}

	seenPrompts := map[string]bool{}
	for _, prompt := range c.Prompts {
		if prompt.ID == "" {
			return fmt.Errorf("prompt with empty id")
		}
		if seenPrompts[prompt.ID] {
			return fmt.Errorf("duplicate prompt id %q", prompt.ID)
		}
		seenPrompts[prompt.ID] = true
	}

	for _, j := range c.Judges {
		switch j.Family {
		case FamilyAnthropic, FamilyGemini, FamilyCopilot, FamilyMock:
		default:
			return fmt.Errorf("judge with unknown family %q", j.Family)
		}
	}

	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > 1e-9 {
		slog.Warn("metric weights do not sum to 1.0", "sum", sum)
	}

	return nil
}

// RequireCredentials fails fast when a credential for any of the given
// families is missing. Configuration errors are fatal before any work
// begins, since no partial progress is possible without them.
func RequireCredentials(families ...string) error {
	seen := map[string]bool{}
	for _, family := range families {
		envKey, ok := EnvKeyForFamily[family]
		if !ok || seen[family] {
			continue
		}
		seen[family] = true
		if os.Getenv(envKey) == "" {
			return fmt.Errorf("%s environment variable is not set (required for the %s family)", envKey, family)
		}
	}
	return nil
}

// ProviderFamilies returns the distinct families of the configured
// providers, in roster order.
func (c *Config) ProviderFamilies() []string {
	var families []string
	seen := map[string]bool{}
	for _, p := range c.Providers {
		if !seen[p.Family] {
			seen[p.Family] = true
			families = append(families, p.Family)
		}
	}
	return families
}

// ProviderByID looks up a provider in the roster.
func (c *Config) ProviderByID(id string) (Provider, bool) {
	for _, p := range c.Providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

// Store path helpers. File names match the original store layout so
// existing result files keep working.

func (c *Config) GenerationStorePath() string {
	return filepath.Join(c.ResultsDir, GenerationStoreFile)
}

func (c *Config) AnalysisStorePath() string {
	return filepath.Join(c.ResultsDir, AnalysisStoreFile)
}

func (c *Config) JudgmentStorePath() string {
	return filepath.Join(c.ResultsDir, JudgmentStoreFile)
}

func (c *Config) ContestResultPath() string {
	return filepath.Join(c.ResultsDir, ContestResultFile)
}

func (c *Config) QCResultsPath() string {
	return filepath.Join(c.ResultsDir, QCResultsDir)
}
