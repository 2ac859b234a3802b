package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/recommend"
	"github.com/hoanghai1803/newslens/internal/storage"
)

// newsResponse is the payload for GET /api/news.
type newsResponse struct {
	Articles        []models.Article `json:"articles"`
	Recommendations []models.Article `json:"recommendations"`
}

// GetNews handles GET /api/news. It returns the headlines for the resolved
// region and category together with recommendations drawn from them.
func GetNews(store *storage.Store, fetcher HeadlineFetcher, ranker *recommend.Ranker, defs FeedDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

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
		if len(articles) == 0 {
			writeError(w, http.StatusNotFound, "No articles found")
			return
		}

		history, err := store.ListHistory(ctx, storage.MaxHistoryEntries)
		if err != nil {
			slog.Error("failed to load reading history", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load reading history")
			return
		}

		writeJSON(w, http.StatusOK, newsResponse{
			Articles:        articles,
			Recommendations: ranker.Recommend(history, articles, recommend.DefaultTopN),
		})
	}
}

// GetRecommendations handles GET /api/recommendations. It ranks the current
// headlines against the stored reading history.
func GetRecommendations(store *storage.Store, fetcher HeadlineFetcher, ranker *recommend.Ranker, defs FeedDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := queryInt(r, "limit", recommend.DefaultTopN)
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

		history, err := store.ListHistory(ctx, storage.MaxHistoryEntries)
		if err != nil {
			slog.Error("failed to load reading history", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load reading history")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"recommendations": ranker.Recommend(history, articles, limit),
		})
	}
}
