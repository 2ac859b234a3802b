package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoanghai1803/newslens/internal/ai"
	"github.com/hoanghai1803/newslens/internal/analysis"
	"github.com/hoanghai1803/newslens/internal/api/handlers"
	"github.com/hoanghai1803/newslens/internal/config"
	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/recommend"
	"github.com/hoanghai1803/newslens/internal/storage"
)

// Deps holds everything the HTTP handlers need. Summarizer and Extractor may
// be nil; the summary endpoint then falls back to the description.
type Deps struct {
	Store      *storage.Store
	Fetcher    handlers.HeadlineFetcher
	Extractor  handlers.ArticleExtractor
	Entities   analysis.EntityExtractor
	Aggregator *analysis.Aggregator
	Engine     *analysis.Engine
	Ranker     *recommend.Ranker
	Summarizer ai.Summarizer
}

// NewRouter creates and configures the HTTP router with all API routes, the
// Prometheus endpoint and a health check.
func NewRouter(deps Deps, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	defs := handlers.FeedDefaults{
		Region:   models.Region(cfg.News.DefaultRegion),
		Category: models.Category(cfg.News.DefaultCategory),
	}

	var modelUsed string
	if deps.Summarizer != nil {
		modelUsed = cfg.AI.Model
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.Server.RequestsPerMinute > 0 {
			api.Use(httprate.LimitByIP(cfg.Server.RequestsPerMinute, time.Minute))
		}

		api.Get("/news", handlers.GetNews(deps.Store, deps.Fetcher, deps.Ranker, defs))
		api.Get("/recommendations", handlers.GetRecommendations(deps.Store, deps.Fetcher, deps.Ranker, defs))

		api.Get("/trending-entities", handlers.GetTrendingEntities(deps.Store, deps.Fetcher, deps.Aggregator, defs))
		api.Get("/trending-topics", handlers.GetTrendingTopics(deps.Store, deps.Fetcher, defs))
		api.Post("/extract-entities", handlers.ExtractEntities(deps.Entities))
		api.Post("/related-articles", handlers.GetRelatedArticles(deps.Store, deps.Fetcher, deps.Engine, defs))

		api.Post("/summarize", handlers.Summarize(deps.Store, deps.Summarizer, deps.Extractor, modelUsed))

		api.Get("/history", handlers.GetHistory(deps.Store))
		api.Post("/history", handlers.AddToHistory(deps.Store))

		api.Get("/bookmarks", handlers.GetBookmarks(deps.Store))
		api.Post("/bookmarks", handlers.ToggleBookmark(deps.Store))

		api.Get("/preferences", handlers.GetPreferences(deps.Store))
		api.Put("/preferences", handlers.UpdatePreferences(deps.Store))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
