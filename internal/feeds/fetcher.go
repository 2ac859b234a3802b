// Package feeds fetches news headlines from GNews and RSS sources and
// extracts full article text.
package feeds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hoanghai1803/newslens/internal/metrics"
	"github.com/hoanghai1803/newslens/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	httpTimeout    = 30 * time.Second
	maxConcurrent  = 10
	rateLimitDelay = 1 * time.Second
	maxWords       = 5000
)

// ErrNoSources is returned by Headlines when no source is configured.
var ErrNoSources = errors.New("no article sources configured")

// Fetcher queries every configured source for a region and category with
// per-domain rate limiting and bounded concurrency.
type Fetcher struct {
	sources     []Source
	cache       HeadlineCache
	now         func() time.Time
	spacing     time.Duration
	rateLimiter map[string]time.Time // per-domain last request time
	mu          sync.Mutex           // protects rateLimiter
}

// NewFetcher creates a Fetcher. cache may be nil.
func NewFetcher(sources []Source, cache HeadlineCache) *Fetcher {
	return &Fetcher{
		sources:     sources,
		cache:       cache,
		now:         time.Now,
		spacing:     rateLimitDelay,
		rateLimiter: make(map[string]time.Time),
	}
}

// NewHTTPClient returns an HTTP client with a 30-second timeout and a
// browser-like user agent.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: httpTimeout,
		Transport: &userAgentTransport{
			base: http.DefaultTransport,
		},
	}
}

// userAgentTransport wraps an http.RoundTripper to inject a custom User-Agent
// header on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Newslens/1.0; +https://github.com/hoanghai1803/newslens)")
	req.Header.Set("Accept", "application/json,application/rss+xml,application/xml;q=0.9,*/*;q=0.8")
	return t.base.RoundTrip(req)
}

// Headlines returns the current articles for a region and category. Cached
// batches are served as-is. Otherwise every source is queried concurrently
// with a maximum of 10 goroutines; individual source failures are logged and
// skipped, and an error is returned only when every source failed. Articles
// are de-duplicated by URL and given stable IDs derived from the URL.
func (f *Fetcher) Headlines(ctx context.Context, region models.Region, category models.Category) ([]models.Article, error) {
	if len(f.sources) == 0 {
		return nil, ErrNoSources
	}

	if cached, ok := f.cachedHeadlines(ctx, region, category); ok {
		return cached, nil
	}

	results := make([][]models.Article, len(f.sources))
	errs := make([]error, len(f.sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, src := range f.sources {
		g.Go(func() error {
			if err := f.waitForRateLimit(gctx, extractDomain(src.Endpoint())); err != nil {
				errs[i] = err
				return nil
			}

			articles, err := src.Headlines(gctx, region, category)
			if err != nil {
				slog.Warn("failed to fetch headlines",
					"source", src.Name(),
					"region", region,
					"category", category,
					"error", err,
				)
				metrics.SourceFetchFailures.WithLabelValues(src.Name()).Inc()
				errs[i] = err
				return nil // skip failures, don't fail the batch
			}

			results[i] = articles
			return nil
		})
	}
	g.Wait()

	var articles []models.Article
	seen := make(map[string]bool)
	for _, batch := range results {
		for _, a := range batch {
			if seen[a.URL] {
				continue
			}
			seen[a.URL] = true
			articles = append(articles, f.withMetadata(a, region, category))
		}
	}

	if len(articles) == 0 {
		if err := errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("fetching headlines for %s/%s: %w", region, category, err)
		}
		return []models.Article{}, nil
	}

	slog.Info("fetched headlines", "region", region, "category", category, "articles", len(articles))

	if f.cache != nil {
		if err := f.cache.Set(ctx, region, category, articles); err != nil {
			slog.Warn("failed to cache headlines", "error", err)
		}
	}
	return articles, nil
}

func (f *Fetcher) cachedHeadlines(ctx context.Context, region models.Region, category models.Category) ([]models.Article, bool) {
	if f.cache == nil {
		return nil, false
	}
	cached, ok, err := f.cache.Get(ctx, region, category)
	if err != nil {
		slog.Warn("headline cache lookup failed", "error", err)
		metrics.HeadlineCacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	if !ok {
		metrics.HeadlineCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.HeadlineCacheLookups.WithLabelValues("hit").Inc()
	return cached, true
}

// withMetadata fills the fields every served article carries: a stable ID
// derived from its URL, the requested region and category, and a publication
// time (the fetch time when the source gave none).
func (f *Fetcher) withMetadata(a models.Article, region models.Region, category models.Category) models.Article {
	a.ArticleID = ArticleID(a.URL)
	if a.Region == "" {
		a.Region = region
	}
	if a.Category == "" {
		a.Category = category
	}
	if a.PublishedAt == nil {
		now := f.now()
		a.PublishedAt = &now
	}
	return a
}

// ArticleID returns the stable identifier for an article URL.
func ArticleID(articleURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(articleURL)).String()
}

// ExtractArticle fetches the full article text from the given URL using
// go-readability. The returned text is truncated to 5000 words maximum.
func (f *Fetcher) ExtractArticle(ctx context.Context, articleURL string) (string, error) {
	if err := f.waitForRateLimit(ctx, extractDomain(articleURL)); err != nil {
		return "", err
	}

	text, err := extractFullText(articleURL, httpTimeout)
	if err != nil {
		return "", fmt.Errorf("extracting article from %q: %w", articleURL, err)
	}

	return truncateWords(text, maxWords), nil
}

// waitForRateLimit enforces a minimum delay of 1 second between requests to
// the same domain. It blocks until the delay has elapsed or ctx is done.
func (f *Fetcher) waitForRateLimit(ctx context.Context, domain string) error {
	f.mu.Lock()
	next := time.Now()
	if lastReq, ok := f.rateLimiter[domain]; ok && lastReq.Add(f.spacing).After(next) {
		next = lastReq.Add(f.spacing)
	}
	f.rateLimiter[domain] = next
	f.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// extractDomain parses a URL and returns its hostname. If parsing fails, it
// returns the raw URL as a fallback key.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
