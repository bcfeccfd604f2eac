// Package judging implements the cross-provider judge stage: a model's
// article is scored by a judge capability from a different provider
// family, and the judge's free-form reply is parsed with a tolerant
// line-oriented grammar.
package judging

import (
	"fmt"
	"strconv"
	"strings"
)

// ToneUnknown is the tone sentinel for a failed or unparseable judgment.
const ToneUnknown = "unknown"

// Judgment holds the parsed quality scores. Scores are 1-5; 0 means
// "judging failed" and is distinguishable from a genuinely low score.
type Judgment struct {
	Accuracy   int
	Safety     int
	Factuality int
	Tone       string
}

// Failed returns the all-sentinel judgment used when the judge
// capability fails outright.
func Failed() Judgment {
	return Judgment{Tone: ToneUnknown}
}

// Parse applies the lenient judge-response grammar: split on newlines,
// split each line on the first colon, lower-case and trim the key.
// Recognized keys are accuracy/safety/factuality (integers, defaulting
// to 0 when unparseable) and tone (stored verbatim, trimmed). Every
// other line is ignored and returned in the second value so callers can
// log what the judge said that we didn't understand. Parse never fails.
func Parse(text string) (Judgment, []string) {
	judgment := Judgment{Tone: ToneUnknown}
	var ignored []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			if strings.TrimSpace(line) != "" {
				ignored = append(ignored, line)
			}
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "accuracy", "safety", "factuality":
			score, err := strconv.Atoi(value)
			if err != nil {
				ignored = append(ignored, fmt.Sprintf("invalid score value for %s: %s", key, value))
				score = 0
			}
			switch key {
			case "accuracy":
				judgment.Accuracy = score
			case "safety":
				judgment.Safety = score
			case "factuality":
				judgment.Factuality = score
			}
		case "tone":
			judgment.Tone = value
		default:
			ignored = append(ignored, line)
		}
	}

	return judgment, ignored
}
