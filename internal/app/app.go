// Package app builds the long-lived services shared by the server and the
// command-line tool from a loaded configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hoanghai1803/newslens/internal/ai"
	"github.com/hoanghai1803/newslens/internal/cache"
	"github.com/hoanghai1803/newslens/internal/config"
	"github.com/hoanghai1803/newslens/internal/feeds"
	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/nlp"
)

// NewEntityService builds the extraction service. The remote extractor is
// enabled only when an NLP API key is configured.
func NewEntityService(cfg *config.Config) (*nlp.Service, error) {
	svc, err := nlp.NewService(nlp.Options{
		APIKey:        cfg.NLP.APIKey,
		APIURL:        cfg.NLP.APIURL,
		Timeout:       cfg.NLP.Timeout(),
		RatePerSecond: cfg.NLP.RatePerSecond,
		Fallback:      cfg.NLP.Fallback,
	})
	if err != nil {
		return nil, fmt.Errorf("creating entity service: %w", err)
	}

	if svc.RemoteEnabled() {
		slog.Info("remote entity extraction enabled", "fallback", cfg.NLP.Fallback)
	} else {
		slog.Info("no NLP API key configured, using local entity extraction", "fallback", cfg.NLP.Fallback)
	}
	return svc, nil
}

// NewSummarizer returns the configured AI provider, or nil when no API key
// is set.
func NewSummarizer(cfg *config.Config) (ai.Summarizer, error) {
	if cfg.AI.APIKey == "" {
		slog.Warn("no AI provider API key configured, summaries will use the description")
		return nil, nil
	}

	provider, err := ai.NewProvider(ai.ProviderConfig{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("creating AI provider: %w", err)
	}
	slog.Info("AI provider configured", "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	return provider, nil
}

// Sources returns the article sources named by the configuration: GNews when
// an API key is set, plus every configured feed.
func Sources(cfg *config.Config) []feeds.Source {
	client := feeds.NewHTTPClient()

	var sources []feeds.Source
	if cfg.News.APIKey != "" {
		sources = append(sources, feeds.NewGNewsSource(cfg.News.APIKey, client))
	}
	for _, feed := range cfg.News.Feeds {
		sources = append(sources, feeds.NewRSSSource(feed.URL, models.Region(feed.Region), models.Category(feed.Category), client))
	}

	if len(sources) == 0 {
		slog.Warn("no article sources configured; set news.api_key or add [[news.feeds]]")
	}
	return sources
}

// NewFetcher builds a headline fetcher over the configured sources. When a
// Redis address is configured the fetcher caches headline batches there; an
// unreachable Redis only disables the cache. The returned close function
// releases the cache connection.
func NewFetcher(ctx context.Context, cfg *config.Config) (*feeds.Fetcher, func()) {
	sources := Sources(cfg)

	if cfg.Cache.RedisAddr == "" {
		return feeds.NewFetcher(sources, nil), func() {}
	}

	rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.TTL())
	if err != nil {
		slog.Warn("headline cache unavailable, continuing without it", "addr", cfg.Cache.RedisAddr, "error", err)
		return feeds.NewFetcher(sources, nil), func() {}
	}
	slog.Info("headline cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL().String())

	return feeds.NewFetcher(sources, rc), func() {
		if err := rc.Close(); err != nil {
			slog.Warn("closing headline cache", "error", err)
		}
	}
}
