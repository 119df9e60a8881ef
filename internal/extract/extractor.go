// Package extract reduces a web page to the plain text and domain used by
// the analysis pipeline.
package extract

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/credlens/credlens/internal/cache"
	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/util"
	"github.com/credlens/credlens/internal/worker"
)

// maxTextChars bounds the extracted text to cap downstream cost
const maxTextChars = 2000

// FetchError reports a failed page fetch. The orchestrator maps it to a
// caller-facing extraction error.
type FetchError struct {
	URL        string
	StatusCode int // 0 for transport failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Extractor fetches pages and reduces them to plain text. It never
// executes page scripts; extraction is text-only.
type Extractor struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	store      cache.Cache
	cacheTTL   model.CacheConfig
}

// NewExtractor creates an extractor from the HTTP configuration.
// store may be nil to disable caching.
func NewExtractor(cfg model.HTTPConfig, cacheCfg model.CacheConfig, store cache.Cache) *Extractor {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	rate := cfg.RatePerDomain
	if rate <= 0 {
		rate = 2.0
	}

	return &Extractor{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		limiter:   worker.NewLimiter(rate, 2),
		store:     store,
		cacheTTL:  cacheCfg,
	}
}

// Extract fetches rawURL and returns its plain-text content and hostname.
// Any fetch failure (network error, non-2xx, robots denial) returns a
// *FetchError.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (model.ExtractedContent, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return model.ExtractedContent{}, &FetchError{URL: rawURL, Err: fmt.Errorf("invalid URL")}
	}

	if e.store != nil {
		if data, found := e.store.Get(cache.FetchKey(rawURL)); found {
			var content model.ExtractedContent
			if err := json.Unmarshal(data, &content); err == nil {
				return content, nil
			}
		}
	}

	if e.robots != nil && !e.robots.Allowed(ctx, rawURL) {
		return model.ExtractedContent{}, &FetchError{URL: rawURL, Err: fmt.Errorf("disallowed by robots.txt")}
	}

	if err := e.limiter.Wait(ctx, rawURL); err != nil {
		return model.ExtractedContent{}, &FetchError{URL: rawURL, Err: err}
	}

	body, err := e.fetch(ctx, rawURL)
	if err != nil {
		return model.ExtractedContent{}, err
	}

	content := model.ExtractedContent{
		Text:   ReduceHTML(body),
		Domain: parsed.Hostname(),
	}

	if e.store != nil {
		if data, err := json.Marshal(content); err == nil {
			_ = e.store.Set(cache.FetchKey(rawURL), data, e.cacheTTL.TTL)
		}
	}

	return content, nil
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}

	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	maxBytes := e.maxBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}

	return string(body), nil
}

// ReduceHTML strips markup from an HTML document: script, style, and
// similar non-content blocks are dropped, remaining text is whitespace
// collapsed and truncated to the extraction budget.
func ReduceHTML(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// html.Parse is tolerant; a hard failure means the input is far
		// from HTML, so fall back to treating it as plain text.
		return truncate(collapseWhitespace(htmlContent))
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return truncate(collapseWhitespace(buf.String()))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxTextChars {
		return s
	}
	return string(runes[:maxTextChars])
}
