package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/credlens/credlens/internal/model"
)

// defaultFactCheckEndpoint is the Google Fact Check Tools claim search API
const defaultFactCheckEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// FactCheckClient queries a claim-review index for prior fact checks
type FactCheckClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewFactCheckClient creates a fact-check index client
func NewFactCheckClient(endpoint, apiKey string, timeout time.Duration) *FactCheckClient {
	if endpoint == "" {
		endpoint = defaultFactCheckEndpoint
	}
	return &FactCheckClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Claim search response structures (Fact Check Tools API)
type factCheckResponse struct {
	Claims []factCheckClaim `json:"claims"`
}

type factCheckClaim struct {
	Text        string        `json:"text"`
	Claimant    string        `json:"claimant,omitempty"`
	ClaimReview []claimReview `json:"claimReview"`
}

type claimReview struct {
	Publisher struct {
		Name string `json:"name"`
		Site string `json:"site,omitempty"`
	} `json:"publisher"`
	URL           string `json:"url,omitempty"`
	TextualRating string `json:"textualRating,omitempty"`
}

// Search queries the index for claim reviews matching the query text
func (c *FactCheckClient) Search(ctx context.Context, query string) ([]model.FactCheckClaim, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("fact-check API key not configured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fact-check query: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fact-check query: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed factCheckResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	claims := make([]model.FactCheckClaim, 0, len(parsed.Claims))
	for _, c := range parsed.Claims {
		claim := model.FactCheckClaim{
			Text:      c.Text,
			Publisher: "Unknown",
			Rating:    "No rating",
		}
		if len(c.ClaimReview) > 0 {
			review := c.ClaimReview[0]
			if review.Publisher.Name != "" {
				claim.Publisher = review.Publisher.Name
			}
			if review.TextualRating != "" {
				claim.Rating = review.TextualRating
			}
			claim.URL = review.URL
		}
		claims = append(claims, claim)
	}

	return claims, nil
}
