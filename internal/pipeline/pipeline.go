package pipeline

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/credlens/credlens/internal/cache"
	"github.com/credlens/credlens/internal/evidence"
	"github.com/credlens/credlens/internal/extract"
	"github.com/credlens/credlens/internal/fuse"
	"github.com/credlens/credlens/internal/heuristic"
	"github.com/credlens/credlens/internal/llm"
	"github.com/credlens/credlens/internal/model"
)

// ContentExtractor fetches a URL and reduces it to analyzable text
type ContentExtractor interface {
	Extract(ctx context.Context, rawURL string) (model.ExtractedContent, error)
}

// EvidenceGatherer collects external evidence for a claim. Gather never
// fails; lookup errors degrade to empty evidence.
type EvidenceGatherer interface {
	Gather(ctx context.Context, claimText string) model.Evidence
}

// VerdictClassifier produces an AI verdict. Classify never fails; the
// null verdict stands in for any provider failure.
type VerdictClassifier interface {
	Classify(ctx context.Context, text string, evidence model.Evidence) model.AiVerdict
	IsEnabled() bool
}

// Pipeline orchestrates the complete analysis: extraction, evidence
// gathering, heuristic scoring, AI classification, and score fusion.
type Pipeline struct {
	extractor  ContentExtractor
	gatherer   EvidenceGatherer
	scorer     *heuristic.Scorer
	classifier VerdictClassifier
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			diskTTL := cfg.Cache.DiskTTL
			if diskTTL == 0 {
				diskTTL = 24 * time.Hour
			}
			store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, diskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		}
	}

	classifier, err := llm.NewClassifier(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		log.Printf("pipeline: LLM provider unavailable, continuing without classification: %v", err)
		classifier = llm.NewClassifierWithProvider(nil, llm.ConfigFromModel(cfg.LLM))
	}

	return &Pipeline{
		extractor:  extract.NewExtractor(cfg.HTTP, cfg.Cache, store),
		gatherer:   evidence.NewGatherer(cfg.Evidence, cfg.Cache, store),
		scorer:     heuristic.NewScorer(),
		classifier: classifier,
	}
}

// NewPipelineWithComponents wires explicit collaborators. Used by tests
// and by callers that share component instances.
func NewPipelineWithComponents(extractor ContentExtractor, gatherer EvidenceGatherer, classifier VerdictClassifier) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		gatherer:   gatherer,
		scorer:     heuristic.NewScorer(),
		classifier: classifier,
	}
}

// Analyze runs the full pipeline for one request and returns the report.
// Failures before scoring (validation, extraction) return typed errors;
// everything downstream degrades instead of failing.
func (p *Pipeline) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisReport, error) {
	text := strings.TrimSpace(req.Text)
	rawURL := strings.TrimSpace(req.URL)

	if text == "" && rawURL == "" {
		return nil, &ValidationError{Reason: "either text or url must be provided"}
	}

	var domain string
	if rawURL != "" && text == "" {
		content, err := p.extractor.Extract(ctx, rawURL)
		if err != nil {
			return nil, &ExtractionError{URL: rawURL, Err: err}
		}
		text = content.Text
		domain = content.Domain
	}

	ev := p.gatherer.Gather(ctx, text)

	// Heuristic scoring and AI classification are independent; run both at once.
	var (
		wg      sync.WaitGroup
		heur    model.HeuristicResult
		verdict model.AiVerdict
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		heur = p.scorer.Score(text, domain)
	}()
	go func() {
		defer wg.Done()
		verdict = p.classifier.Classify(ctx, text, ev)
	}()
	wg.Wait()

	finalScore, reasoning := fuse.Fuse(heur, verdict)

	report := &model.AnalysisReport{
		AnalysisID:       uuid.NewString(),
		CredibilityScore: finalScore,
		Reasoning:        reasoning,
		Flags:            heur.Flags,
		SourceAuthority:  heur.SourceAuthority,
		AiClassification: verdict.Classification,
		AiConfidence:     verdict.Confidence,
		AiAnalysis:       verdict.Analysis,
		FactCheckResults: verdict.FactCheckResults,
		CreatedAt:        time.Now().UTC(),
	}
	return report, nil
}
