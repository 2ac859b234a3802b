package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/hoanghai1803/newslens/internal/models"
)

// MaxHistoryEntries is the number of most recent reads kept.
const MaxHistoryEntries = 50

// AddToHistory records that an article was read. An article already in the
// history is moved to the front with the new read time, and only the 50
// most recent entries are kept. A zero ReadAt means now.
func (s *Store) AddToHistory(ctx context.Context, entry models.ReadingHistoryEntry) error {
	if entry.ArticleID == "" {
		return ErrMissingArticleID
	}
	if entry.ReadAt.IsZero() {
		entry.ReadAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reading_history WHERE article_id = ?`, entry.ArticleID,
	); err != nil {
		return fmt.Errorf("removing previous history entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reading_history (article_id, title, url, category, read_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ArticleID, entry.Title, entry.URL, string(entry.Category), formatTime(entry.ReadAt),
	); err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reading_history WHERE id NOT IN (
			SELECT id FROM reading_history ORDER BY read_at DESC, id DESC LIMIT ?
		 )`, MaxHistoryEntries,
	); err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history entry: %w", err)
	}
	return nil
}

// ListHistory returns up to limit history entries, most recent first. A
// limit <= 0 returns every entry.
func (s *Store) ListHistory(ctx context.Context, limit int) ([]models.ReadingHistoryEntry, error) {
	if limit <= 0 {
		limit = MaxHistoryEntries
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, article_id, title, url, category, read_at
		 FROM reading_history
		 ORDER BY read_at DESC, id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	entries := []models.ReadingHistoryEntry{}
	for rows.Next() {
		var (
			e        models.ReadingHistoryEntry
			category string
			readAt   string
		)
		if err := rows.Scan(&e.ID, &e.ArticleID, &e.Title, &e.URL, &category, &readAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Category = models.Category(category)
		e.ReadAt = parseTime(readAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return entries, nil
}
