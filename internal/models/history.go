package models

import "time"

// ReadingHistoryEntry records that the user opened an article.
type ReadingHistoryEntry struct {
	ID        int64     `json:"id"`
	ArticleID string    `json:"articleId"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Category  Category  `json:"category"`
	ReadAt    time.Time `json:"readAt"`
}

// Bookmark is an article the user saved for later.
type Bookmark struct {
	ID        int64     `json:"id"`
	Article   Article   `json:"article"`
	CreatedAt time.Time `json:"createdAt"`
}

// ArticleSummary holds a cached summary keyed by article URL.
type ArticleSummary struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Summary   string    `json:"summary"`
	ModelUsed string    `json:"modelUsed"`
	CreatedAt time.Time `json:"createdAt"`
}
