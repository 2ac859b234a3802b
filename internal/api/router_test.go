package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hoanghai1803/newslens/internal/analysis"
	"github.com/hoanghai1803/newslens/internal/config"
	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/nlp"
	"github.com/hoanghai1803/newslens/internal/recommend"
	"github.com/hoanghai1803/newslens/internal/storage"
)

type staticFetcher []models.Article

func (f staticFetcher) Headlines(context.Context, models.Region, models.Category) ([]models.Article, error) {
	return f, nil
}

func newTestRouter(t *testing.T, rpm int) http.Handler {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.RequestsPerMinute = rpm
	cfg.News.DefaultRegion = "in"
	cfg.News.DefaultCategory = "general"

	entities := nlp.Compose(nil, nlp.PatternExtractor{})
	fetcher := staticFetcher{
		{ArticleID: "a1", Title: "India wins", Description: "Cricket in 2024", URL: "https://news.example.com/a1"},
	}

	return NewRouter(Deps{
		Store:      storage.NewStore(db),
		Fetcher:    fetcher,
		Entities:   entities,
		Aggregator: analysis.NewAggregator(entities, 1),
		Engine:     analysis.NewEngine(entities, 1),
		Ranker:     recommend.NewRanker(),
	}, cfg)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t, 0)

	tests := []struct {
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/news", "", http.StatusOK},
		{http.MethodGet, "/api/trending-entities", "", http.StatusOK},
		{http.MethodGet, "/api/trending-topics", "", http.StatusOK},
		{http.MethodGet, "/api/recommendations", "", http.StatusOK},
		{http.MethodPost, "/api/extract-entities", `{"title": "India", "description": "2024"}`, http.StatusOK},
		{http.MethodPost, "/api/summarize", `{"title": "t", "description": "d"}`, http.StatusOK},
		{http.MethodGet, "/api/history", "", http.StatusOK},
		{http.MethodGet, "/api/bookmarks", "", http.StatusOK},
		{http.MethodGet, "/api/preferences", "", http.StatusOK},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
		{http.MethodDelete, "/api/history", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			var r *http.Request
			if tt.body != "" {
				r = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			} else {
				r = httptest.NewRequest(tt.method, tt.target, nil)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRouterRateLimit(t *testing.T) {
	router := newTestRouter(t, 2)

	var codes []int
	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("got statuses %v, want the first two allowed", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("got third status %d, want %d", codes[2], http.StatusTooManyRequests)
	}

	// Health checks are outside the limited API group.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("got healthz status %d, want %d", w.Code, http.StatusOK)
	}
}
