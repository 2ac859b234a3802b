package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/newslens/internal/analysis"
	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/storage"
)

// Default result sizes for the entity endpoints.
const (
	defaultTrendingLimit = 6
	defaultTopicsLimit   = 10
	defaultRelatedLimit  = 5
)

// GetTrendingEntities handles GET /api/trending-entities. A feed failure is
// not fatal: the aggregator answers with its mock entities instead.
func GetTrendingEntities(store *storage.Store, fetcher HeadlineFetcher, agg *analysis.Aggregator, defs FeedDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := queryInt(r, "limit", defaultTrendingLimit)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		region, category, err := resolveFeed(ctx, store, r.URL.Query().Get("region"), r.URL.Query().Get("category"), defs)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		articles, err := fetcher.Headlines(ctx, region, category)
		if err != nil {
			slog.Warn("headlines unavailable for trending entities", "region", region, "category", category, "error", err)
			articles = nil
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"trendingEntities": agg.Trending(ctx, articles, limit),
		})
	}
}

// GetTrendingTopics handles GET /api/trending-topics. It counts the most
// frequent long words across the current headlines.
func GetTrendingTopics(store *storage.Store, fetcher HeadlineFetcher, defs FeedDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := queryInt(r, "limit", defaultTopicsLimit)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		region, category, err := resolveFeed(ctx, store, r.URL.Query().Get("region"), r.URL.Query().Get("category"), defs)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		articles, err := fetcher.Headlines(ctx, region, category)
		if err != nil {
			slog.Error("failed to fetch headlines", "region", region, "category", category, "error", err)
			writeError(w, http.StatusBadGateway, "Failed to fetch news")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"trendingTopics": analysis.TrendingKeywords(articles, limit),
		})
	}
}

type extractRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// ExtractEntities handles POST /api/extract-entities.
func ExtractEntities(ex analysis.EntityExtractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req extractRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		article := models.Article{Title: req.Title, Description: req.Description}
		entities := ex.Extract(r.Context(), article.Text())
		if entities == nil {
			entities = []models.Entity{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"entities": entities})
	}
}

type relatedRequest struct {
	TargetArticle *articlePayload `json:"targetArticle" validate:"required"`
	Region        string          `json:"region"`
	Category      string          `json:"category"`
	Limit         int             `json:"limit" validate:"omitempty,min=1,max=50"`
}

// GetRelatedArticles handles POST /api/related-articles. Candidates are the
// current headlines for the requested feed, falling back to the target's own
// region and category.
func GetRelatedArticles(store *storage.Store, fetcher HeadlineFetcher, engine *analysis.Engine, defs FeedDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req relatedRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Limit == 0 {
			req.Limit = defaultRelatedLimit
		}

		target := req.TargetArticle.article()
		if req.Region == "" {
			req.Region = string(target.Region)
		}
		if req.Category == "" {
			req.Category = string(target.Category)
		}

		region, category, err := resolveFeed(ctx, store, req.Region, req.Category, defs)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		candidates, err := fetcher.Headlines(ctx, region, category)
		if err != nil {
			slog.Error("failed to fetch headlines", "region", region, "category", category, "error", err)
			writeError(w, http.StatusBadGateway, "Failed to fetch news")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"relatedArticles": engine.Related(ctx, target, candidates, req.Limit),
		})
	}
}
