// Package evidence gathers fact-check and web-search material for a claim.
// The two lookups run concurrently and degrade independently: a failed
// source contributes empty results instead of an error.
package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/credlens/credlens/internal/cache"
	"github.com/credlens/credlens/internal/model"
)

// noFactChecksSummary is used when the index returns no entries
const noFactChecksSummary = "No verified fact-check results found."

// maxSummaryEntries caps how many fact checks feed the summary digest
const maxSummaryEntries = 3

// FactChecker looks up prior claim reviews
type FactChecker interface {
	Search(ctx context.Context, query string) ([]model.FactCheckClaim, error)
}

// WebSearcher looks up recent web material
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]model.WebResult, error)
}

// Gatherer fans out to both evidence sources
type Gatherer struct {
	factChecker FactChecker
	webSearcher WebSearcher
	store       cache.Cache
	cacheCfg    model.CacheConfig
}

// NewGatherer creates a gatherer from the evidence configuration.
// store may be nil to disable lookup caching.
func NewGatherer(cfg model.EvidenceConfig, cacheCfg model.CacheConfig, store cache.Cache) *Gatherer {
	return &Gatherer{
		factChecker: NewFactCheckClient(cfg.FactCheckEndpoint, cfg.FactCheckAPIKey, cfg.Timeout),
		webSearcher: NewSearchClient(cfg.SearchEndpoint, cfg.SearchAPIKey, cfg.MaxSearchResults, cfg.Timeout),
		store:       store,
		cacheCfg:    cacheCfg,
	}
}

// NewGathererWithSources creates a gatherer with explicit sources
func NewGathererWithSources(factChecker FactChecker, webSearcher WebSearcher) *Gatherer {
	return &Gatherer{
		factChecker: factChecker,
		webSearcher: webSearcher,
	}
}

// Gather runs both lookups concurrently and never fails: each source's
// error degrades to empty results for that source.
func (g *Gatherer) Gather(ctx context.Context, claimText string) model.Evidence {
	var (
		wg         sync.WaitGroup
		factChecks []model.FactCheckClaim
		webResults []model.WebResult
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		claims, err := g.searchFactChecks(ctx, claimText)
		if err != nil {
			log.Printf("evidence: fact-check lookup degraded: %v", err)
			return
		}
		factChecks = claims
	}()

	go func() {
		defer wg.Done()
		results, err := g.searchWeb(ctx, claimText)
		if err != nil {
			log.Printf("evidence: web-search lookup degraded: %v", err)
			return
		}
		webResults = results
	}()

	wg.Wait()

	return model.Evidence{
		FactCheckSummary: SummarizeFactChecks(factChecks),
		FactChecks:       factChecks,
		WebResults:       webResults,
	}
}

func (g *Gatherer) searchFactChecks(ctx context.Context, query string) ([]model.FactCheckClaim, error) {
	key := cache.EvidenceKey("factcheck", query)
	if g.store != nil {
		if data, found := g.store.Get(key); found {
			var claims []model.FactCheckClaim
			if err := json.Unmarshal(data, &claims); err == nil {
				return claims, nil
			}
		}
	}

	claims, err := g.factChecker.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if g.store != nil {
		if data, err := json.Marshal(claims); err == nil {
			_ = g.store.Set(key, data, g.cacheCfg.TTL)
		}
	}
	return claims, nil
}

func (g *Gatherer) searchWeb(ctx context.Context, query string) ([]model.WebResult, error) {
	key := cache.EvidenceKey("search", query)
	if g.store != nil {
		if data, found := g.store.Get(key); found {
			var results []model.WebResult
			if err := json.Unmarshal(data, &results); err == nil {
				return results, nil
			}
		}
	}

	results, err := g.webSearcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if g.store != nil {
		if data, err := json.Marshal(results); err == nil {
			_ = g.store.Set(key, data, g.cacheCfg.TTL)
		}
	}
	return results, nil
}

// SummarizeFactChecks renders up to three fact-check entries into the
// short digest embedded in the classifier prompt.
func SummarizeFactChecks(claims []model.FactCheckClaim) string {
	if len(claims) == 0 {
		return noFactChecksSummary
	}

	var lines []string
	for i, c := range claims {
		if i >= maxSummaryEntries {
			break
		}
		lines = append(lines, fmt.Sprintf("%s rated %q as: %s", c.Publisher, c.Text, c.Rating))
	}

	return strings.Join(lines, "\n")
}
