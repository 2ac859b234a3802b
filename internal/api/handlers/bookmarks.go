package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/storage"
)

// GetBookmarks handles GET /api/bookmarks.
func GetBookmarks(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := store.ListBookmarks(r.Context())
		if err != nil {
			slog.Error("failed to list bookmarks", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get bookmarks")
			return
		}
		if bookmarks == nil {
			bookmarks = []models.Bookmark{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"bookmarks": bookmarks})
	}
}

// ToggleBookmark handles POST /api/bookmarks. It adds the article when it is
// not bookmarked and removes it otherwise.
func ToggleBookmark(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req articleRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		article := req.Article.article()
		bookmarked, err := store.ToggleBookmark(r.Context(), article)
		if err != nil {
			slog.Error("failed to toggle bookmark", "article_id", article.ArticleID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update bookmark")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"articleId":    article.ArticleID,
			"isBookmarked": bookmarked,
		})
	}
}
