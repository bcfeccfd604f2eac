// Package models defines the record types shared by every stage of the
// contest pipeline. A record is one (model, prompt) evaluation result,
// progressively enriched: generation adds tokens/latency/cost, analysis
// adds word counts and broken links, judging adds quality scores.
//
// JSON field names are a compatibility surface: the store files written
// here are read and merged across runs, so the keys must stay stable.
package models

// Prompt is a static content specification: what each model is asked to
// write about. Prompts are immutable and defined at configuration time.
type Prompt struct {
	ID       string   `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Usage holds token accounting for one generation call. For word-based
// capability families the values are estimates derived from a
// words-per-token ratio rather than provider-reported counts.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationRecord is the result of generating one prompt with one model.
type GenerationRecord struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Keywords         []string `json:"keywords"`
	PromptTokens     int      `json:"prompt_tokens"`
	CompletionTokens int      `json:"completion_tokens"`
	TotalTokens      int      `json:"total_tokens"`
	LatencyMs        int64    `json:"latency_ms"`
	CostUSD          float64  `json:"cost_usd"`
	Response         string   `json:"response"`
}

// Key returns the prompt ID, which is unique within one model's records.
func (r GenerationRecord) Key() string { return r.ID }

// AnalysisRecord extends a GenerationRecord with the link and length
// analysis results.
type AnalysisRecord struct {
	GenerationRecord

	// WordsCount is the word count of the response, excluding markdown
	// link syntax and raw URLs.
	WordsCount int `json:"words_count"`

	// BrokenLinks lists cited URLs that failed the reachability probe,
	// in first-seen order. Serialized as [] when empty, never null.
	BrokenLinks []string `json:"broken_links"`
}

// JudgmentRecord extends an AnalysisRecord with the judge's quality
// scores. Scores are 1-5; 0 is the sentinel for "judging failed", and
// "unknown" is the tone sentinel.
type JudgmentRecord struct {
	AnalysisRecord

	Accuracy   int    `json:"accuracy"`
	Safety     int    `json:"safety"`
	Factuality int    `json:"factuality"`
	Tone       string `json:"tone"`
}
