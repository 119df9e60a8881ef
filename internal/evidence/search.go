package evidence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/credlens/credlens/internal/model"
)

// defaultSearchEndpoint is the Tavily search API
const defaultSearchEndpoint = "https://api.tavily.com/search"

// SearchClient queries a web-search index for recent corroborating material
type SearchClient struct {
	endpoint   string
	apiKey     string
	maxResults int
	httpClient *http.Client
}

// NewSearchClient creates a web-search client
func NewSearchClient(endpoint, apiKey string, maxResults int, timeout time.Duration) *SearchClient {
	if endpoint == "" {
		endpoint = defaultSearchEndpoint
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	return &SearchClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search queries the index and returns ranked results
func (c *SearchClient) Search(ctx context.Context, query string) ([]model.WebResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("search API key not configured")
	}

	payload, err := json.Marshal(searchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: "advanced",
		MaxResults:  c.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search query: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]model.WebResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, model.WebResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		})
	}

	return results, nil
}
