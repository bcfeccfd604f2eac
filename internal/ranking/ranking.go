// Package ranking turns a judgment table into a contest result: global
// per-metric bounds, min-max normalization, weighted scoring, and winner
// selection. Every function here is pure: identical inputs produce
// identical outputs.
package ranking

import (
	"fmt"
	"math"

	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/store"
)

// Normalize maps value into [0,1] relative to the given bounds. When the
// bounds are degenerate (min == max) the metric carries no discriminating
// information and the result is defined as exactly 0.5.
func Normalize(value, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return (value - min) / (max - min)
}

type minMax struct {
	min, max float64
}

func newMinMax() minMax {
	return minMax{min: math.Inf(1), max: math.Inf(-1)}
}

func (m *minMax) observe(v float64) {
	m.min = math.Min(m.min, v)
	m.max = math.Max(m.max, v)
}

func (m minMax) bounds() models.Bounds {
	return models.Bounds{Min: m.min, Max: m.max}
}

// ComputeBounds scans every record across every model and returns the
// global min and max of each ranked metric. Bounds are always recomputed
// from the full dataset, never carried over from a prior run.
func ComputeBounds(table store.Table[models.JudgmentRecord]) models.ContestBounds {
	latency := newMinMax()
	cost := newMinMax()
	words := newMinMax()
	accuracy := newMinMax()
	safety := newMinMax()
	factuality := newMinMax()

	for _, model := range table.Models() {
		for _, rec := range table[model] {
			latency.observe(float64(rec.LatencyMs))
			cost.observe(rec.CostUSD)
			words.observe(float64(rec.WordsCount))
			accuracy.observe(float64(rec.Accuracy))
			safety.observe(float64(rec.Safety))
			factuality.observe(float64(rec.Factuality))
		}
	}

	return models.ContestBounds{
		LatencyMs:  latency.bounds(),
		CostUSD:    cost.bounds(),
		WordsCount: words.bounds(),
		Accuracy:   accuracy.bounds(),
		Safety:     safety.bounds(),
		Factuality: factuality.bounds(),
	}
}

// RecordScore computes one record's weighted score: each metric
// normalized to [0,1], latency and cost inverted (lower is better), then
// the weight dot product.
func RecordScore(rec models.JudgmentRecord, bounds models.ContestBounds, weights models.Weights) float64 {
	latencyNorm := 1 - Normalize(float64(rec.LatencyMs), bounds.LatencyMs.Min, bounds.LatencyMs.Max)
	costNorm := 1 - Normalize(rec.CostUSD, bounds.CostUSD.Min, bounds.CostUSD.Max)
	wordsNorm := Normalize(float64(rec.WordsCount), bounds.WordsCount.Min, bounds.WordsCount.Max)
	accuracyNorm := Normalize(float64(rec.Accuracy), bounds.Accuracy.Min, bounds.Accuracy.Max)
	safetyNorm := Normalize(float64(rec.Safety), bounds.Safety.Min, bounds.Safety.Max)
	factualityNorm := Normalize(float64(rec.Factuality), bounds.Factuality.Min, bounds.Factuality.Max)

	return weights.Cost*costNorm +
		weights.Latency*latencyNorm +
		weights.WordCount*wordsNorm +
		weights.Accuracy*accuracyNorm +
		weights.Safety*safetyNorm +
		weights.Factuality*factualityNorm
}

// ModelScore averages the weighted scores of one model's records
// (simple arithmetic mean, unweighted by prompt).
func ModelScore(records []models.JudgmentRecord, bounds models.ContestBounds, weights models.Weights) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0.0
	for _, rec := range records {
		total += RecordScore(rec, bounds, weights)
	}
	return total / float64(len(records))
}

// Rank computes the full contest result. Models are scanned in
// lexicographic ID order and the winner is the strictly highest average
// score; on an exact tie the lexicographically first model ID wins.
func Rank(table store.Table[models.JudgmentRecord], weights models.Weights) (*models.ContestResult, error) {
	if table.Len() == 0 {
		return nil, fmt.Errorf("judgment store is empty, nothing to rank")
	}

	bounds := ComputeBounds(table)
	scores := make(map[string]float64, len(table))

	winner := models.Winner{Score: math.Inf(-1)}
	for _, model := range table.Models() {
		score := ModelScore(table[model], bounds, weights)
		scores[model] = score
		if score > winner.Score {
			winner = models.Winner{Model: model, Score: score}
		}
	}

	return &models.ContestResult{
		Bounds:      bounds,
		ModelScores: scores,
		Winner:      winner,
		Weights:     weights,
	}, nil
}
