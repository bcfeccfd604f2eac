// Package wizard collects contest configuration interactively and
// renders the starter inkwell.yaml.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"github.com/inkwell-ai/inkwell/internal/config"
	"golang.org/x/term"
)

// ContestSpec holds the fields collected during the interactive wizard.
type ContestSpec struct {
	ProviderID     string
	ProviderFamily string
	Model          string
	InputRate      float64
	OutputRate     float64
	WordsPerToken  float64
	JudgeFamily    string
	JudgeModel     string
	ResultsDir     string
}

const configTemplate = `# inkwell contest configuration
results_dir: {{ .ResultsDir }}

providers:
  - id: {{ .ProviderID }}
    family: {{ .ProviderFamily }}
{{- if .Model }}
    model: {{ .Model }}
{{- end }}
    input_rate: {{ .InputRate }}
    output_rate: {{ .OutputRate }}
{{- if .WordsPerToken }}
    words_per_token: {{ .WordsPerToken }}
{{- end }}

judges:
  - family: {{ .JudgeFamily }}
    model: {{ .JudgeModel }}

# weights, prompts, and qc fall back to built-in defaults when omitted.
`

// RunConfigWizard runs an interactive huh form to collect contest
// configuration.
func RunConfigWizard(in io.Reader, out io.Writer) (*ContestSpec, error) {
	var (
		providerID       string
		providerFamily   string
		model            string
		inputRateRaw     = "3.0"
		outputRateRaw    = "15.0"
		wordsPerTokenRaw = "0.75"
		judgeFamily      string
		judgeModel       string
		resultsDir       = config.DefaultResultsDir
	)

	familyOptions := []huh.Option[string]{
		huh.NewOption("anthropic", config.FamilyAnthropic),
		huh.NewOption("gemini", config.FamilyGemini),
		huh.NewOption("copilot-sdk", config.FamilyCopilot),
		huh.NewOption("mock", config.FamilyMock),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Provider ID").
				Description("The model identifier used as the store key").
				Placeholder("claude-sonnet-4-5").
				Value(&providerID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("provider id is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Provider family").
				Options(familyOptions...).
				Value(&providerFamily),
			huh.NewInput().
				Title("Provider model name").
				Description("Provider-side model name (blank to reuse the ID)").
				Value(&model),
			huh.NewInput().
				Title("Input rate").
				Description("Dollars per million input tokens").
				Value(&inputRateRaw).
				Validate(validateRate),
			huh.NewInput().
				Title("Output rate").
				Description("Dollars per million output tokens").
				Value(&outputRateRaw).
				Validate(validateRate),
			huh.NewInput().
				Title("Words per token").
				Description("Estimation ratio for word-based families (gemini, copilot-sdk)").
				Value(&wordsPerTokenRaw).
				Validate(validateRate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Judge family").
				Description("Should differ from the provider family for cross-evaluation").
				Options(familyOptions...).
				Value(&judgeFamily),
			huh.NewInput().
				Title("Judge model").
				Placeholder("gemini-2.5-flash").
				Value(&judgeModel).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("judge model is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Results directory").
				Value(&resultsDir),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	inputRate, _ := strconv.ParseFloat(strings.TrimSpace(inputRateRaw), 64)
	outputRate, _ := strconv.ParseFloat(strings.TrimSpace(outputRateRaw), 64)
	wordsPerToken, _ := strconv.ParseFloat(strings.TrimSpace(wordsPerTokenRaw), 64)

	return &ContestSpec{
		ProviderID:     strings.TrimSpace(providerID),
		ProviderFamily: providerFamily,
		Model:          strings.TrimSpace(model),
		InputRate:      inputRate,
		OutputRate:     outputRate,
		WordsPerToken:  wordsPerToken,
		JudgeFamily:    judgeFamily,
		JudgeModel:     strings.TrimSpace(judgeModel),
		ResultsDir:     strings.TrimSpace(resultsDir),
	}, nil
}

// GenerateConfigYAML renders an inkwell.yaml from the given spec.
func GenerateConfigYAML(spec *ContestSpec) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func validateRate(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
