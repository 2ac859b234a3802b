package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Summarizer is the interface that all LLM providers must implement.
type Summarizer interface {
	// Summarize generates a short summary of the given news article.
	Summarize(ctx context.Context, article ArticleEntry) (string, error)
}

// NewProvider creates the appropriate provider based on config.
func NewProvider(cfg ProviderConfig) (Summarizer, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// SummarizeWithFallback asks s for a summary and degrades to text derived
// from the description when no provider is configured (FallbackSummary) or
// the provider fails (TruncatedSummary). generated reports whether the
// provider produced the summary.
func SummarizeWithFallback(ctx context.Context, s Summarizer, article ArticleEntry) (summary string, generated bool) {
	if s == nil {
		return FallbackSummary(article.Description), false
	}

	text, err := s.Summarize(ctx, article)
	if err == nil {
		text = strings.TrimSpace(text)
	}
	if err != nil || text == "" {
		slog.Warn("summary generation failed, using truncated description", "title", article.Title, "error", err)
		return TruncatedSummary(article.Description), false
	}
	return text, true
}
