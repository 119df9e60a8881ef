package heuristic

import (
	"regexp"
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// Process-wide lexicon data. Loaded once, read-only thereafter.
var (
	suspiciousPhrases = []string{
		"you won't believe", "doctors hate", "they don't want you to know",
		"exposed", "wake up", "sheeple", "mainstream media lies",
		"big pharma", "secret cure", "government cover-up", "hoax",
		"miracle cure", "banned video", "one weird trick",
	}

	reliableDomains = []string{
		"bbc.com", "bbc.co.uk", "reuters.com", "apnews.com",
		"npr.org", "nytimes.com", "theguardian.com", "washingtonpost.com",
		"wikipedia.org", "snopes.com", "factcheck.org", "nature.com",
		"sciencedirect.com", "pubmed.ncbi.nlm.nih.gov",
	}

	unreliableDomains = []string{
		"infowars.com", "naturalnews.com", "beforeitsnews.com",
		"worldtruth.tv", "yournewswire.com",
	}

	digitRunRe = regexp.MustCompile(`\d{2,}`)
)

const (
	maxFlags      = 5
	baseScore     = 50
	authorityHigh = 85
	authorityLow  = 15
	authorityMid  = 55
)

// Scorer computes the lexical heuristic score. It is stateless and safe
// for concurrent use.
type Scorer struct{}

// NewScorer creates a new heuristic scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes a 0-100 credibility estimate and red flags from raw text.
// domain is optional; pass "" for raw-text input. The function is
// deterministic, performs no I/O, and never fails.
func (s *Scorer) Score(text, domain string) model.HeuristicResult {
	score := baseScore
	var flags []string
	lower := strings.ToLower(text)

	// All-caps shouting. Length floor of 1 avoids division by zero on
	// empty input.
	upper := 0
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			upper++
		}
	}
	length := len(text)
	if length < 1 {
		length = 1
	}
	capsRatio := float64(upper) / float64(length)
	if capsRatio > 0.4 && len(text) > 10 {
		score -= 10
		flags = append(flags, "Text in all caps - potential sensationalism")
	}

	if strings.Count(text, "!") >= 3 {
		score -= 8
		flags = append(flags, "Excessive exclamation marks detected")
	}

	// One deduction regardless of how many phrases match
	for _, phrase := range suspiciousPhrases {
		if strings.Contains(lower, phrase) {
			score -= 15
			flags = append(flags, "Strong emotional / conspiracy language detected")
			break
		}
	}

	// Positive signals: citations, data, quoted sources
	if strings.Contains(text, "http://") || strings.Contains(text, "https://") {
		score += 5
	}
	if digitRunRe.MatchString(text) {
		score += 3
	}
	if strings.Contains(text, `"`) {
		score += 3
	}

	var sourceAuthority *int
	if domain != "" {
		switch {
		case containsAny(domain, reliableDomains):
			sourceAuthority = intPtr(authorityHigh)
			score += 20
		case containsAny(domain, unreliableDomains):
			sourceAuthority = intPtr(authorityLow)
			score -= 20
			flags = append(flags, "Source is from a known unreliable domain")
		default:
			sourceAuthority = intPtr(authorityMid)
		}
		if strings.HasPrefix(domain, "https") {
			score += 5
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if len(flags) > maxFlags {
		flags = flags[:maxFlags]
	}

	return model.HeuristicResult{
		Score:           score,
		Flags:           flags,
		SourceAuthority: sourceAuthority,
	}
}

func containsAny(domain string, list []string) bool {
	for _, d := range list {
		if strings.Contains(domain, d) {
			return true
		}
	}
	return false
}

func intPtr(v int) *int {
	return &v
}
