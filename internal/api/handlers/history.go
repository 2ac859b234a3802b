package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/storage"
)

type articleRequest struct {
	Article *articlePayload `json:"article" validate:"required"`
}

// GetHistory handles GET /api/history. Entries are most recent first.
func GetHistory(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := store.ListHistory(r.Context(), storage.MaxHistoryEntries)
		if err != nil {
			slog.Error("failed to list reading history", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get reading history")
			return
		}
		if history == nil {
			history = []models.ReadingHistoryEntry{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"readingHistory": history})
	}
}

// AddToHistory handles POST /api/history. Reading an article again moves it
// to the front.
func AddToHistory(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req articleRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		article := req.Article.article()
		entry := models.ReadingHistoryEntry{
			ArticleID: article.ArticleID,
			Title:     article.Title,
			URL:       article.URL,
			Category:  article.Category,
			ReadAt:    time.Now(),
		}
		if err := store.AddToHistory(r.Context(), entry); err != nil {
			slog.Error("failed to add to reading history", "article_id", entry.ArticleID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update reading history")
			return
		}

		writeJSON(w, http.StatusCreated, entry)
	}
}
