package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hoanghai1803/newslens/internal/ai"
	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/storage"
)

// newTestStore creates an in-memory SQLite store with migrations applied. It
// registers a cleanup function to close the database when the test completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return storage.NewStore(db)
}

var testDefaults = FeedDefaults{Region: models.RegionIndia, Category: models.CategoryGeneral}

// stubFetcher serves canned headlines and records the last feed requested.
type stubFetcher struct {
	articles     []models.Article
	err          error
	lastRegion   models.Region
	lastCategory models.Category
}

func (f *stubFetcher) Headlines(_ context.Context, region models.Region, category models.Category) ([]models.Article, error) {
	f.lastRegion, f.lastCategory = region, category
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

var errFeedDown = errors.New("feed down")

type stubSummarizer struct {
	summary string
	err     error
	calls   int
	last    ai.ArticleEntry
}

func (s *stubSummarizer) Summarize(_ context.Context, article ai.ArticleEntry) (string, error) {
	s.calls++
	s.last = article
	return s.summary, s.err
}

type stubExtractor struct {
	text string
	err  error
}

func (e stubExtractor) ExtractArticle(context.Context, string) (string, error) {
	return e.text, e.err
}

func testArticle(id, title, desc string, category models.Category) models.Article {
	published := time.Now().Add(-2 * time.Hour)
	return models.Article{
		ArticleID:   id,
		Title:       title,
		Description: desc,
		URL:         "https://news.example.com/" + id,
		Category:    category,
		Region:      models.RegionIndia,
		PublishedAt: &published,
	}
}

// serve runs h against a request built from method, target and an optional
// JSON body.
func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}
