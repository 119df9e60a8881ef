package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/credlens/credlens/internal/model"
)

// maxPromptTextChars bounds the user-turn text to cap cost and latency
const maxPromptTextChars = 1500

// BuildSystemPrompt constructs the classification instruction: the current
// date, the gathered evidence, the decision hierarchy the model must
// follow, and the strict JSON response contract.
func BuildSystemPrompt(evidence model.Evidence, now time.Time) string {
	var web strings.Builder
	for i, r := range evidence.WebResults {
		if i > 0 {
			web.WriteString("\n\n")
		}
		fmt.Fprintf(&web, "Title: %s\nSource: %s\nSummary: %s", r.Title, r.URL, r.Snippet)
	}
	if web.Len() == 0 {
		web.WriteString("(No web search evidence available)")
	}

	return fmt.Sprintf(`You are an advanced misinformation detection and fact-checking AI.

Your job is to evaluate a claim using REAL EVIDENCE, not guesses.

Today's date is: %s

--------------------------------------------------
EVIDENCE SOURCES
--------------------------------------------------

1) Verified Fact-Check Database Results:
%s

2) Web Search Evidence (recent sources):
%s

--------------------------------------------------
REASONING RULES
--------------------------------------------------

You MUST follow this hierarchy:

STEP 1 - Fact-Check Authority (highest priority)
If reputable fact-checking organizations (AFP, Reuters, AP, PolitiFact, BBC, Snopes, etc.)
have rated the claim:
- False -> classification = "likely_false"
- True -> classification = "credible"
- Misleading -> classification = "misleading"

STEP 2 - Scientific & Historical Consensus
If overwhelming scientific or historical consensus contradicts the claim,
classify as "likely_false" even if no fact-check entry exists.

STEP 3 - Evidence Support
If multiple reliable sources support the claim -> "credible".

STEP 4 - Uncertainty
Use "uncertain" ONLY when:
- evidence conflicts, OR
- claim refers to future/unverifiable events.

DO NOT default to uncertainty when strong evidence exists.

--------------------------------------------------
OUTPUT STYLE
--------------------------------------------------

Provide a SHORT explanation suitable for normal users:
- clear and direct
- reference evidence logically (do not list URLs)

--------------------------------------------------
RESPONSE FORMAT (STRICT JSON)
--------------------------------------------------

Return ONLY valid JSON:

{
  "classification": "credible | misleading | likely_false | uncertain",
  "confidence": number (0-100),
  "analysis": "short explanation for the user",
  "factCheckResults": []
}

Confidence Guidelines:
- 85-100 -> strong verified consensus
- 60-85 -> reliable evidence
- 40-60 -> mixed/uncertain evidence
- 0-40 -> strong contradiction

Never output text outside JSON.`,
		now.Format("2006-01-02"), evidence.FactCheckSummary, web.String())
}

// BuildUserPrompt constructs the user turn with the text to analyze,
// truncated to the prompt budget.
func BuildUserPrompt(text string) string {
	runes := []rune(text)
	if len(runes) > maxPromptTextChars {
		text = string(runes[:maxPromptTextChars])
	}
	return "Analyze this text for misinformation:\n\n" + text
}
