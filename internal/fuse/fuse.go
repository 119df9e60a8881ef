// Package fuse combines the heuristic score with the AI verdict into the
// final credibility score and reasoning text.
package fuse

import (
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// Reasoning fallback messages, selected by the post-fusion score band.
const (
	reasoningHigh = "Credibility appears high based on available signals. Verify important claims independently."
	reasoningMid  = "Evidence is mixed. Additional verification is recommended."
	reasoningLow  = "Multiple misinformation indicators detected. Verify using trusted sources."
)

// minAnalysisLen is the minimum AI explanation length considered usable
const minAnalysisLen = 30

// Fuse deterministically adjusts the heuristic score by the AI
// classification and selects the reasoning text. The returned score is
// always within [0,100] and the reasoning is never empty.
func Fuse(heuristic model.HeuristicResult, verdict model.AiVerdict) (int, string) {
	score := heuristic.Score

	switch verdict.Classification {
	case model.ClassLikelyFalse:
		score -= 20
	case model.ClassMisleading:
		score -= 10
	case model.ClassCredible:
		score += 10
	}
	// uncertain and the null verdict leave the score unchanged

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, reasoning(score, verdict)
}

// reasoning prefers the AI explanation when substantial, otherwise falls
// back to a fixed message chosen by the final score band.
func reasoning(finalScore int, verdict model.AiVerdict) string {
	if analysis := strings.TrimSpace(verdict.Analysis); len(analysis) > minAnalysisLen {
		return analysis
	}

	switch {
	case finalScore >= 70:
		return reasoningHigh
	case finalScore >= 40:
		return reasoningMid
	default:
		return reasoningLow
	}
}
