package feeds

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/mmcdole/gofeed"
)

// Compile-time interface check.
var _ Source = (*RSSSource)(nil)

// RSSSource serves a single RSS or Atom feed for one region and category.
type RSSSource struct {
	feedURL  string
	region   models.Region
	category models.Category
	client   *http.Client
}

// NewRSSSource creates an RSSSource. A nil client uses NewHTTPClient.
func NewRSSSource(feedURL string, region models.Region, category models.Category, client *http.Client) *RSSSource {
	if client == nil {
		client = NewHTTPClient()
	}
	return &RSSSource{feedURL: feedURL, region: region, category: category, client: client}
}

func (s *RSSSource) Name() string     { return "rss:" + extractDomain(s.feedURL) }
func (s *RSSSource) Endpoint() string { return s.feedURL }

// Headlines parses the feed when it is configured for the requested pair.
func (s *RSSSource) Headlines(ctx context.Context, region models.Region, category models.Category) ([]models.Article, error) {
	if region != s.region || category != s.category {
		return nil, nil
	}

	fp := gofeed.NewParser()
	fp.Client = s.client

	feed, err := fp.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", s.feedURL, err)
	}

	return parseFeedItems(feed, region, category), nil
}
