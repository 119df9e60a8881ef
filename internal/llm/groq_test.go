package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/credlens/credlens/internal/model"
)

func TestGroqProvider_Classify(t *testing.T) {
	var gotModel string
	var gotSystem string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Unexpected auth header: %s", auth)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Decode request: %v", err)
		}
		gotModel = req.Model
		if len(req.Messages) == 2 && req.Messages[0].Role == "system" {
			gotSystem = req.Messages[0].Content
		}

		_, _ = fmt.Fprint(w, `{
			"choices": [{"message": {"role": "assistant", "content": "{\"classification\": \"likely_false\", \"confidence\": 90, \"analysis\": \"Contradicted by multiple fact checks of the same claim.\"}"}}],
			"usage": {"total_tokens": 210}
		}`)
	}))
	defer server.Close()

	provider, err := NewGroqProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewGroqProvider failed: %v", err)
	}

	resp, err := provider.Classify(context.Background(), ClassifyRequest{
		Text: "miracle cure suppressed by big pharma",
		Evidence: model.Evidence{
			FactCheckSummary: `Snopes rated "Miracle cure" as: False`,
		},
	})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if gotModel != groqDefaultModel {
		t.Errorf("Expected default model %s, got %s", groqDefaultModel, gotModel)
	}
	if !strings.Contains(gotSystem, "Snopes") {
		t.Error("Expected evidence in the system prompt")
	}
	if resp.Verdict.Classification != model.ClassLikelyFalse {
		t.Errorf("Expected likely_false, got %s", resp.Verdict.Classification)
	}
	if resp.Verdict.Confidence == nil || *resp.Verdict.Confidence != 90 {
		t.Errorf("Expected confidence 90, got %v", resp.Verdict.Confidence)
	}
	if resp.TokensUsed != 210 {
		t.Errorf("Expected 210 tokens, got %d", resp.TokensUsed)
	}
}

func TestGroqProvider_RequiresKey(t *testing.T) {
	if _, err := NewGroqProvider(Config{}); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestGroqProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = fmt.Fprint(w, `{"error": {"message": "rate limit exceeded"}}`)
	}))
	defer server.Close()

	provider, err := NewGroqProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewGroqProvider failed: %v", err)
	}

	if _, err := provider.Classify(context.Background(), ClassifyRequest{Text: "x"}); err == nil {
		t.Error("Expected error on rate limit")
	}
}

func TestGroqProvider_Name(t *testing.T) {
	provider, err := NewGroqProvider(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewGroqProvider failed: %v", err)
	}
	if provider.Name() != "groq" {
		t.Errorf("Expected groq, got %s", provider.Name())
	}
}
