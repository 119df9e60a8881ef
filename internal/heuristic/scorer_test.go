package heuristic

import (
	"strings"
	"testing"
)

func TestScore_EmptyText(t *testing.T) {
	scorer := NewScorer()

	result := scorer.Score("", "")

	if result.Score != 50 {
		t.Errorf("Expected score 50 for empty text, got %d", result.Score)
	}
	if len(result.Flags) != 0 {
		t.Errorf("Expected no flags for empty text, got %v", result.Flags)
	}
	if result.SourceAuthority != nil {
		t.Errorf("Expected nil source authority without domain, got %d", *result.SourceAuthority)
	}
}

func TestScore_SensationalistText(t *testing.T) {
	scorer := NewScorer()

	// All caps, >= 3 exclamation marks, and a suspicious phrase:
	// 50 - 10 - 8 - 15 = 17
	result := scorer.Score("I SAW THIS!!! THEY DON'T WANT YOU TO KNOW!!!", "")

	if result.Score != 17 {
		t.Errorf("Expected score 17, got %d", result.Score)
	}
	if len(result.Flags) != 3 {
		t.Errorf("Expected 3 flags, got %d: %v", len(result.Flags), result.Flags)
	}
}

func TestScore_PositiveSignals(t *testing.T) {
	scorer := NewScorer()

	// Citation URL (+5), digit run (+3), quotation (+3): 50 + 11 = 61
	text := `The study of 1500 participants found "significant effects" per https://example.org/study`
	result := scorer.Score(text, "")

	if result.Score != 61 {
		t.Errorf("Expected score 61, got %d", result.Score)
	}
	if len(result.Flags) != 0 {
		t.Errorf("Expected no flags, got %v", result.Flags)
	}
}

func TestScore_DomainAuthority(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name          string
		domain        string
		wantAuthority int
		wantFlag      bool
	}{
		{"reliable", "www.bbc.com", 85, false},
		{"unreliable", "naturalnews.com", 15, true},
		{"unknown", "someblog.example", 55, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Score("Some neutral text.", tt.domain)

			if result.SourceAuthority == nil {
				t.Fatal("Expected source authority to be set")
			}
			if *result.SourceAuthority != tt.wantAuthority {
				t.Errorf("Expected authority %d, got %d", tt.wantAuthority, *result.SourceAuthority)
			}

			hasFlag := false
			for _, f := range result.Flags {
				if strings.Contains(f, "known unreliable domain") {
					hasFlag = true
				}
			}
			if hasFlag != tt.wantFlag {
				t.Errorf("Expected unreliable-domain flag %v, got flags %v", tt.wantFlag, result.Flags)
			}
		})
	}
}

func TestScore_ReliableDomainBoost(t *testing.T) {
	scorer := NewScorer()

	// Base 50 + reliable domain 20 = 70
	result := scorer.Score("Some neutral text.", "www.reuters.com")

	if result.Score != 70 {
		t.Errorf("Expected score 70, got %d", result.Score)
	}
}

func TestScore_HTTPSDomainPrefix(t *testing.T) {
	scorer := NewScorer()

	// Unknown domain (no adjustment) + https prefix bonus: 50 + 5 = 55
	result := scorer.Score("Some neutral text.", "https.example.org")

	if result.Score != 55 {
		t.Errorf("Expected score 55, got %d", result.Score)
	}
}

func TestScore_SuspiciousPhraseSingleDeduction(t *testing.T) {
	scorer := NewScorer()

	// Multiple suspicious phrases still deduct only once: 50 - 15 = 35
	result := scorer.Score("wake up sheeple, big pharma hides the secret cure", "")

	if result.Score != 35 {
		t.Errorf("Expected single -15 deduction (score 35), got %d", result.Score)
	}

	count := 0
	for _, f := range result.Flags {
		if strings.Contains(f, "conspiracy") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one conspiracy flag, got %d", count)
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	scorer := NewScorer()

	inputs := []struct {
		text   string
		domain string
	}{
		{"", ""},
		{"HOAX!!! EXPOSED!!! WAKE UP!!!", "infowars.com"},
		{`"Quoted" data 2024 https://example.org`, "https://www.bbc.com"},
		{strings.Repeat("A", 5000), ""},
	}

	for _, in := range inputs {
		result := scorer.Score(in.text, in.domain)
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("Score out of range for %q: %d", in.text[:min(len(in.text), 40)], result.Score)
		}
		if len(result.Flags) > 5 {
			t.Errorf("Too many flags: %v", result.Flags)
		}
	}
}
