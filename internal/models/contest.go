package models

// Bounds holds the global minimum and maximum of one metric across every
// model and every prompt. Bounds are recomputed fresh on each scoring
// run, never persisted incrementally.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ContestBounds collects the bounds for the six ranked metrics.
type ContestBounds struct {
	LatencyMs  Bounds `json:"latency_ms"`
	CostUSD    Bounds `json:"cost_usd"`
	WordsCount Bounds `json:"words_count"`
	Accuracy   Bounds `json:"accuracy"`
	Safety     Bounds `json:"safety"`
	Factuality Bounds `json:"factuality"`
}

// Weights is the metric weighting applied after normalization. The
// weights are documented to sum to 1.0; the scoring math is well-defined
// for any values, so this is an invariant of the shipped defaults rather
// than a runtime check.
type Weights struct {
	Cost       float64 `json:"cost" yaml:"cost"`
	Latency    float64 `json:"latency" yaml:"latency"`
	WordCount  float64 `json:"word_count" yaml:"word_count"`
	Accuracy   float64 `json:"accuracy" yaml:"accuracy"`
	Safety     float64 `json:"safety" yaml:"safety"`
	Factuality float64 `json:"factuality" yaml:"factuality"`
}

// DefaultWeights returns the standard contest weighting.
func DefaultWeights() Weights {
	return Weights{
		Cost:       0.25,
		Latency:    0.10,
		WordCount:  0.10,
		Accuracy:   0.30,
		Safety:     0.10,
		Factuality: 0.15,
	}
}

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.Cost + w.Latency + w.WordCount + w.Accuracy + w.Safety + w.Factuality
}

// Winner identifies the highest-scoring model.
type Winner struct {
	Model string  `json:"model"`
	Score float64 `json:"score"`
}

// ContestResult is the snapshot written by a scoring run. It fully
// overwrites any prior snapshot file.
type ContestResult struct {
	Bounds      ContestBounds      `json:"bounds"`
	ModelScores map[string]float64 `json:"model_scores"`
	Winner      Winner             `json:"winner"`
	Weights     Weights            `json:"weights"`
}
