package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hoanghai1803/newslens/internal/models"
)

// UpsertSummary stores a generated summary for an article URL, replacing
// any earlier one.
func (s *Store) UpsertSummary(ctx context.Context, summary *models.ArticleSummary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO article_summaries (url, summary, model_used)
		 VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			summary    = excluded.summary,
			model_used = excluded.model_used,
			created_at = datetime('now')`,
		summary.URL, summary.Summary, summary.ModelUsed,
	)
	if err != nil {
		return fmt.Errorf("upserting summary: %w", err)
	}
	return nil
}

// GetSummaryByURL returns the cached summary for an article URL.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetSummaryByURL(ctx context.Context, url string) (*models.ArticleSummary, error) {
	var (
		summary   models.ArticleSummary
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, url, summary, model_used, created_at
		 FROM article_summaries WHERE url = ?`, url,
	).Scan(&summary.ID, &summary.URL, &summary.Summary, &summary.ModelUsed, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting summary by url: %w", err)
	}
	summary.CreatedAt = parseTime(createdAt)
	return &summary, nil
}
