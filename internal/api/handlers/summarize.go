package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/newslens/internal/ai"
	"github.com/hoanghai1803/newslens/internal/feeds"
	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/storage"
)

type summarizeRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Source      string `json:"source"`
	URL         string `json:"url" validate:"omitempty,url"`
}

type summarizeResponse struct {
	Summary            string `json:"summary"`
	ReadingTimeMinutes int    `json:"readingTimeMinutes"`
	Cached             bool   `json:"cached,omitempty"`
}

// Summarize handles POST /api/summarize. Summaries are cached by URL; when a
// URL is given the article's full text is extracted and summarized instead
// of the description. summarizer and extractor may be nil.
func Summarize(store *storage.Store, summarizer ai.Summarizer, extractor ArticleExtractor, modelUsed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req summarizeRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if req.URL != "" {
			cached, err := store.GetSummaryByURL(ctx, req.URL)
			switch {
			case err == nil:
				writeJSON(w, http.StatusOK, summarizeResponse{
					Summary:            cached.Summary,
					ReadingTimeMinutes: feeds.CalculateReadingTime(req.Description),
					Cached:             true,
				})
				return
			case !errors.Is(err, storage.ErrNotFound):
				slog.Warn("failed to read cached summary", "url", req.URL, "error", err)
			}
		}

		entry := ai.ArticleEntry{
			Title:       req.Title,
			Source:      req.Source,
			Description: req.Description,
		}
		if req.URL != "" && extractor != nil {
			text, err := extractor.ExtractArticle(ctx, req.URL)
			if err != nil {
				slog.Warn("full text extraction failed, summarizing description", "url", req.URL, "error", err)
			} else {
				entry.FullContent = text
			}
		}

		summary, generated := ai.SummarizeWithFallback(ctx, summarizer, entry)

		if generated && req.URL != "" {
			if err := store.UpsertSummary(ctx, &models.ArticleSummary{
				URL:       req.URL,
				Summary:   summary,
				ModelUsed: modelUsed,
			}); err != nil {
				slog.Error("failed to cache summary", "url", req.URL, "error", err)
			}
		}

		readingText := entry.FullContent
		if readingText == "" {
			readingText = entry.Description
		}

		writeJSON(w, http.StatusOK, summarizeResponse{
			Summary:            summary,
			ReadingTimeMinutes: feeds.CalculateReadingTime(readingText),
		})
	}
}
