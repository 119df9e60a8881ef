package model

import "time"

// AnalysisRequest is the single entry-point input: exactly one of Text or URL
// must be set. Both empty is a validation error.
type AnalysisRequest struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// ExtractedContent is the plain-text reduction of a fetched page
type ExtractedContent struct {
	Text   string `json:"text"`             // Plain text, length-capped
	Domain string `json:"domain,omitempty"` // Hostname, empty for raw-text input
}

// HeuristicResult is the output of the lexical heuristic scorer
type HeuristicResult struct {
	Score           int      `json:"score"`                     // 0-100
	Flags           []string `json:"flags"`                     // Red flags, capped at 5
	SourceAuthority *int     `json:"sourceAuthority,omitempty"` // 0-100, nil when no domain
}

// WebResult is a single web-search hit used as classification evidence
type WebResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// FactCheckClaim is one entry returned by the fact-check index
type FactCheckClaim struct {
	Text      string `json:"text"`      // The claim as reviewed
	Publisher string `json:"publisher"` // Reviewing organization
	Rating    string `json:"rating"`    // Textual rating (e.g., "False")
	URL       string `json:"url,omitempty"`
}

// Evidence is the aggregated material gathered for one claim
type Evidence struct {
	FactCheckSummary string           `json:"factCheckSummary"`
	FactChecks       []FactCheckClaim `json:"factChecks,omitempty"`
	WebResults       []WebResult      `json:"webResults,omitempty"`
}

// Classification is the AI-assigned categorical verdict
type Classification string

const (
	ClassCredible    Classification = "credible"
	ClassMisleading  Classification = "misleading"
	ClassLikelyFalse Classification = "likely_false"
	ClassUncertain   Classification = "uncertain"
)

// Valid reports whether c is one of the known classification values
func (c Classification) Valid() bool {
	switch c {
	case ClassCredible, ClassMisleading, ClassLikelyFalse, ClassUncertain:
		return true
	}
	return false
}

// FactCheckResult is a fact-check entry as reported back by the classifier
type FactCheckResult struct {
	Claim  string `json:"claim"`
	Rating string `json:"rating"`
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
}

// AiVerdict is the structured verdict parsed from the model completion.
// The zero value (classification "", nil confidence) is the null verdict
// returned whenever classification fails.
type AiVerdict struct {
	Classification   Classification    `json:"classification,omitempty"`
	Confidence       *int              `json:"confidence,omitempty"` // 0-100, normalized
	Analysis         string            `json:"analysis,omitempty"`
	FactCheckResults []FactCheckResult `json:"factCheckResults,omitempty"`
}

// IsNull reports whether the verdict carries no classification
func (v AiVerdict) IsNull() bool {
	return v.Classification == ""
}

// AnalysisReport is the final report. It is immutable once produced;
// callers may persist a copy.
type AnalysisReport struct {
	AnalysisID       string            `json:"analysisId"`
	CredibilityScore int               `json:"credibilityScore"` // 0-100, clamped
	Reasoning        string            `json:"reasoning"`        // Never empty
	Flags            []string          `json:"flags"`
	SourceAuthority  *int              `json:"sourceAuthority,omitempty"`
	AiClassification Classification    `json:"aiClassification,omitempty"`
	AiConfidence     *int              `json:"aiConfidence,omitempty"`
	AiAnalysis       string            `json:"aiAnalysis,omitempty"`
	FactCheckResults []FactCheckResult `json:"factCheckResults,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// Label maps the report to a short display label. The classification wins
// when present; the score bands are the fallback.
func (r *AnalysisReport) Label() string {
	switch r.AiClassification {
	case ClassCredible:
		return "Likely Credible"
	case ClassMisleading:
		return "Misleading"
	case ClassLikelyFalse:
		return "Likely Misinformation"
	case ClassUncertain:
		return "Uncertain"
	}
	if r.CredibilityScore >= 70 {
		return "Likely Credible"
	}
	if r.CredibilityScore >= 40 {
		return "Uncertain"
	}
	return "Likely Misinformation"
}
