package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/recommend"
)

func TestGetNews(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"h1", "h2"} {
		if err := store.AddToHistory(ctx, models.ReadingHistoryEntry{
			ArticleID: id, Title: id, URL: "https://news.example.com/" + id, Category: models.CategorySports,
		}); err != nil {
			t.Fatalf("adding history: %v", err)
		}
	}

	fetcher := &stubFetcher{articles: []models.Article{
		testArticle("a1", "Markets rally", "Stocks up", models.CategoryBusiness),
		testArticle("a2", "Derby tonight", "Big match", models.CategorySports),
		testArticle("a3", "New phone", "Launch event", models.CategoryTechnology),
		testArticle("a4", "Rain alert", "Heavy showers", models.CategoryGeneral),
	}}

	w := serve(GetNews(store, fetcher, recommend.NewRanker(), testDefaults), http.MethodGet, "/api/news", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if fetcher.lastRegion != testDefaults.Region || fetcher.lastCategory != testDefaults.Category {
		t.Errorf("fetched %s/%s, want config defaults", fetcher.lastRegion, fetcher.lastCategory)
	}

	var resp newsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(resp.Articles) != 4 {
		t.Errorf("got %d articles, want 4", len(resp.Articles))
	}
	if len(resp.Recommendations) != recommend.DefaultTopN {
		t.Fatalf("got %d recommendations, want %d", len(resp.Recommendations), recommend.DefaultTopN)
	}
	if resp.Recommendations[0].ArticleID != "a2" {
		t.Errorf("got first recommendation %q, want the sports article a2", resp.Recommendations[0].ArticleID)
	}
}

func TestGetNewsUsesStoredPreferences(t *testing.T) {
	store := newTestStore(t)
	if err := store.SetPreferences(context.Background(), map[string]any{
		prefDefaultRegion:   "us",
		prefDefaultCategory: "technology",
	}); err != nil {
		t.Fatalf("setting preferences: %v", err)
	}

	fetcher := &stubFetcher{articles: []models.Article{
		testArticle("a1", "Chip shortage", "Supply tight", models.CategoryTechnology),
	}}

	w := serve(GetNews(store, fetcher, recommend.NewRanker(), testDefaults), http.MethodGet, "/api/news", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if fetcher.lastRegion != models.RegionUnitedStates || fetcher.lastCategory != models.CategoryTechnology {
		t.Errorf("fetched %s/%s, want us/technology", fetcher.lastRegion, fetcher.lastCategory)
	}
}

func TestGetNewsErrors(t *testing.T) {
	tests := []struct {
		name       string
		fetcher    *stubFetcher
		target     string
		wantStatus int
	}{
		{name: "no articles", fetcher: &stubFetcher{}, target: "/api/news", wantStatus: http.StatusNotFound},
		{name: "feed down", fetcher: &stubFetcher{err: errFeedDown}, target: "/api/news", wantStatus: http.StatusBadGateway},
		{name: "bad region", fetcher: &stubFetcher{}, target: "/api/news?region=zz", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			w := serve(GetNews(store, tt.fetcher, recommend.NewRanker(), testDefaults), http.MethodGet, tt.target, "")

			if w.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", w.Code, tt.wantStatus)
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestGetRecommendations(t *testing.T) {
	store := newTestStore(t)
	fetcher := &stubFetcher{articles: []models.Article{
		testArticle("a1", "One", "first", models.CategoryGeneral),
		testArticle("a2", "Two", "second", models.CategoryGeneral),
		testArticle("a3", "Three", "third", models.CategoryGeneral),
	}}

	w := serve(GetRecommendations(store, fetcher, recommend.NewRanker(), testDefaults), http.MethodGet, "/api/recommendations?limit=2", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Recommendations []models.Article `json:"recommendations"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	// Without history the first articles are returned as-is.
	if len(resp.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(resp.Recommendations))
	}
	if resp.Recommendations[0].ArticleID != "a1" || resp.Recommendations[1].ArticleID != "a2" {
		t.Errorf("got %s,%s, want a1,a2", resp.Recommendations[0].ArticleID, resp.Recommendations[1].ArticleID)
	}
}
