package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// rawVerdict mirrors the completion JSON loosely: field naming and the
// confidence unit vary between model versions, so everything is optional
// and normalized afterwards.
type rawVerdict struct {
	Classification   string                  `json:"classification"`
	Confidence       *float64                `json:"confidence"`
	Analysis         string                  `json:"analysis"`
	Reasoning        string                  `json:"reasoning"`
	FactCheckResults []model.FactCheckResult `json:"factCheckResults"`
}

// ParseVerdict extracts the structured verdict from a model completion.
// Surrounding code fences are stripped before parsing. An unparsable or
// unrecognised completion is an error; the classifier boundary collapses
// it to the null verdict.
func ParseVerdict(content string) (model.AiVerdict, error) {
	cleaned := stripCodeFences(content)
	if cleaned == "" {
		return model.AiVerdict{}, fmt.Errorf("empty completion")
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return model.AiVerdict{}, fmt.Errorf("parse verdict JSON: %w", err)
	}

	classification := model.Classification(strings.ToLower(strings.TrimSpace(raw.Classification)))
	if !classification.Valid() {
		return model.AiVerdict{}, fmt.Errorf("unknown classification %q", raw.Classification)
	}

	analysis := raw.Analysis
	if analysis == "" {
		analysis = raw.Reasoning
	}

	return model.AiVerdict{
		Classification:   classification,
		Confidence:       normalizeConfidence(raw.Confidence),
		Analysis:         strings.TrimSpace(analysis),
		FactCheckResults: raw.FactCheckResults,
	}, nil
}

// normalizeConfidence converts the completion's confidence to the
// canonical 0-100 integer scale. Values at or below 1.0 are treated as
// fractions; everything is clamped to [0,100].
func normalizeConfidence(confidence *float64) *int {
	if confidence == nil {
		return nil
	}

	v := *confidence
	if v <= 1.0 {
		v *= 100
	}
	n := int(math.Round(v))
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return &n
}

// stripCodeFences removes markdown fencing a model may wrap around JSON
func stripCodeFences(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
