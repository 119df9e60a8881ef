package llm

import (
	"testing"

	"github.com/credlens/credlens/internal/model"
)

func TestParseVerdict_PlainJSON(t *testing.T) {
	content := `{
		"classification": "likely_false",
		"confidence": 92,
		"analysis": "Multiple fact-checkers rated this claim as false.",
		"factCheckResults": [
			{"claim": "The claim", "rating": "False", "source": "Snopes", "url": "https://snopes.example/1"}
		]
	}`

	verdict, err := ParseVerdict(content)
	if err != nil {
		t.Fatalf("ParseVerdict failed: %v", err)
	}

	if verdict.Classification != model.ClassLikelyFalse {
		t.Errorf("Expected likely_false, got %s", verdict.Classification)
	}
	if verdict.Confidence == nil || *verdict.Confidence != 92 {
		t.Errorf("Expected confidence 92, got %v", verdict.Confidence)
	}
	if len(verdict.FactCheckResults) != 1 {
		t.Errorf("Expected 1 fact-check result, got %d", len(verdict.FactCheckResults))
	}
}

func TestParseVerdict_CodeFenced(t *testing.T) {
	content := "```json\n{\"classification\": \"credible\", \"confidence\": 80, \"analysis\": \"Well supported.\"}\n```"

	verdict, err := ParseVerdict(content)
	if err != nil {
		t.Fatalf("ParseVerdict failed: %v", err)
	}
	if verdict.Classification != model.ClassCredible {
		t.Errorf("Expected credible, got %s", verdict.Classification)
	}
}

func TestParseVerdict_FractionalConfidence(t *testing.T) {
	verdict, err := ParseVerdict(`{"classification": "misleading", "confidence": 0.85}`)
	if err != nil {
		t.Fatalf("ParseVerdict failed: %v", err)
	}
	if verdict.Confidence == nil || *verdict.Confidence != 85 {
		t.Errorf("Expected normalized confidence 85, got %v", verdict.Confidence)
	}
}

func TestParseVerdict_ReasoningFieldAccepted(t *testing.T) {
	verdict, err := ParseVerdict(`{"classification": "uncertain", "reasoning": "Conflicting evidence from both sides."}`)
	if err != nil {
		t.Fatalf("ParseVerdict failed: %v", err)
	}
	if verdict.Analysis != "Conflicting evidence from both sides." {
		t.Errorf("Expected reasoning mapped to analysis, got %q", verdict.Analysis)
	}
}

func TestParseVerdict_AnalysisWinsOverReasoning(t *testing.T) {
	verdict, err := ParseVerdict(`{"classification": "credible", "analysis": "primary", "reasoning": "secondary"}`)
	if err != nil {
		t.Fatalf("ParseVerdict failed: %v", err)
	}
	if verdict.Analysis != "primary" {
		t.Errorf("Expected analysis field preferred, got %q", verdict.Analysis)
	}
}

func TestParseVerdict_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"not JSON", "the claim is probably false"},
		{"unknown classification", `{"classification": "satire", "confidence": 50}`},
		{"missing classification", `{"confidence": 50}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseVerdict(tc.content); err == nil {
				t.Errorf("Expected error for %q", tc.content)
			}
		})
	}
}

func TestNormalizeConfidence_Clamping(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{150, 100},
		{-5, 0},
		{1.0, 100}, // at most 1.0 is treated as a fraction
		{0.5, 50},
		{42, 42},
	}

	for _, tt := range tests {
		got := normalizeConfidence(&tt.in)
		if got == nil || *got != tt.want {
			t.Errorf("normalizeConfidence(%v) = %v, want %d", tt.in, got, tt.want)
		}
	}

	if normalizeConfidence(nil) != nil {
		t.Error("Expected nil for nil input")
	}
}
