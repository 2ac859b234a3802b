package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hoanghai1803/newslens/internal/models"
)

// ToggleBookmark bookmarks the article if it is not bookmarked yet and
// removes the bookmark otherwise. It reports whether the article is
// bookmarked afterwards.
func (s *Store) ToggleBookmark(ctx context.Context, article models.Article) (bool, error) {
	if article.ArticleID == "" {
		return false, ErrMissingArticleID
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE article_id = ?`, article.ArticleID,
	)
	if err != nil {
		return false, fmt.Errorf("removing bookmark: %w", err)
	}

	bookmarked := false
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bookmarks
				(article_id, title, description, url, image, source, category, region, published_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			article.ArticleID, article.Title, article.Description, article.URL, article.Image,
			article.Source, string(article.Category), string(article.Region), formatTimePtr(article.PublishedAt),
		); err != nil {
			return false, fmt.Errorf("adding bookmark: %w", err)
		}
		bookmarked = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing bookmark toggle: %w", err)
	}
	return bookmarked, nil
}

// ListBookmarks returns every bookmark, most recently added first.
func (s *Store) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, article_id, title, description, url, image, source,
				category, region, published_at, created_at
		 FROM bookmarks
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []models.Bookmark{}
	for rows.Next() {
		var (
			b           models.Bookmark
			category    string
			region      string
			publishedAt sql.NullString
			createdAt   string
		)
		if err := rows.Scan(
			&b.ID, &b.Article.ArticleID, &b.Article.Title, &b.Article.Description, &b.Article.URL,
			&b.Article.Image, &b.Article.Source, &category, &region, &publishedAt, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning bookmark row: %w", err)
		}
		b.Article.Category = models.Category(category)
		b.Article.Region = models.Region(region)
		b.Article.PublishedAt = parseNullTime(publishedAt)
		b.CreatedAt = parseTime(createdAt)
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmark rows: %w", err)
	}
	return bookmarks, nil
}

// IsBookmarked reports whether the article is bookmarked.
func (s *Store) IsBookmarked(ctx context.Context, articleID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE article_id = ?)`, articleID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking bookmark: %w", err)
	}
	return exists, nil
}
