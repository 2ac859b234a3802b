package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hoanghai1803/newslens/internal/models"
)

// Compile-time interface check.
var _ Source = (*GNewsSource)(nil)

const gnewsAPIURL = "https://gnews.io/api/v4/top-headlines"

// GNewsSource fetches top headlines from the GNews API.
type GNewsSource struct {
	apiKey string
	url    string
	client *http.Client
}

// NewGNewsSource creates a GNewsSource. A nil client uses NewHTTPClient.
func NewGNewsSource(apiKey string, client *http.Client) *GNewsSource {
	if client == nil {
		client = NewHTTPClient()
	}
	return &GNewsSource{apiKey: apiKey, url: gnewsAPIURL, client: client}
}

func (s *GNewsSource) Name() string     { return "gnews" }
func (s *GNewsSource) Endpoint() string { return s.url }

type gnewsResponse struct {
	Articles []struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Content     string     `json:"content"`
		URL         string     `json:"url"`
		Image       string     `json:"image"`
		PublishedAt *time.Time `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
	Errors []string `json:"errors"`
}

// Headlines requests English top headlines for the given country and
// category.
func (s *GNewsSource) Headlines(ctx context.Context, region models.Region, category models.Category) ([]models.Article, error) {
	q := url.Values{}
	q.Set("country", string(region))
	q.Set("category", string(category))
	q.Set("lang", "en")
	q.Set("token", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	slog.Debug("calling GNews API", "region", region, "category", category)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var apiResp gnewsResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing response (status %d): %w", resp.StatusCode, err)
	}

	if len(apiResp.Errors) > 0 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiResp.Errors[0])
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	articles := make([]models.Article, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		articles = append(articles, models.Article{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			Image:       a.Image,
			Source:      a.Source.Name,
			Category:    category,
			Region:      region,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
