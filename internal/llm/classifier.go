package llm

import (
	"context"
	"log"

	"github.com/credlens/credlens/internal/model"
)

// Classifier is the adapter boundary around a Provider. Classify is a
// total function: every failure mode (missing credential, rate limit,
// transport error, malformed completion) is logged and collapsed to the
// null verdict, so the pipeline always completes.
type Classifier struct {
	provider Provider
	config   Config
}

// NewClassifier creates a classifier for the configured provider.
// An empty provider name yields a disabled classifier.
func NewClassifier(config Config) (*Classifier, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		provider: provider,
		config:   config,
	}, nil
}

// NewClassifierWithProvider creates a classifier around an explicit provider
func NewClassifierWithProvider(provider Provider, config Config) *Classifier {
	return &Classifier{
		provider: provider,
		config:   config,
	}
}

// IsEnabled reports whether a provider is configured
func (c *Classifier) IsEnabled() bool {
	return c.provider != nil
}

// ProviderName returns the configured provider's name, or "" when disabled
func (c *Classifier) ProviderName() string {
	if c.provider == nil {
		return ""
	}
	return c.provider.Name()
}

// Classify returns the AI verdict for the text given the gathered
// evidence. It never returns an error: a disabled classifier or any
// provider failure yields the null verdict.
func (c *Classifier) Classify(ctx context.Context, text string, evidence model.Evidence) model.AiVerdict {
	if c.provider == nil {
		return model.AiVerdict{}
	}

	resp, err := c.provider.Classify(ctx, ClassifyRequest{
		Text:      text,
		Evidence:  evidence,
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
	})
	if err != nil {
		log.Printf("llm: classification degraded to null verdict: %v", err)
		return model.AiVerdict{}
	}

	return resp.Verdict
}
