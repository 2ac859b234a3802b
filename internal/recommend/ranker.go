// Package recommend ranks candidate articles against a reader's history.
package recommend

import (
	"slices"
	"time"

	"github.com/hoanghai1803/newslens/internal/models"
)

// DefaultTopN is used when Recommend is called with topN <= 0.
const DefaultTopN = 3

const day = 24 * time.Hour

// Ranker scores candidates by category affinity and recency.
type Ranker struct {
	now func() time.Time
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithClock overrides the clock used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(r *Ranker) { r.now = now }
}

// NewRanker creates a Ranker that reads the wall clock unless overridden.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type scored struct {
	article models.Article
	score   int
}

// Recommend returns up to topN candidates. With no history the first topN
// candidates are returned as-is. Otherwise each candidate scores twice the
// number of history entries sharing its category (empty categories count as
// general) plus a recency bonus, and the highest scores win with candidate
// order breaking ties.
func (r *Ranker) Recommend(history []models.ReadingHistoryEntry, candidates []models.Article, topN int) []models.Article {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(history) == 0 {
		return slices.Clone(candidates[:min(len(candidates), topN)])
	}

	interest := make(map[models.Category]int)
	for _, entry := range history {
		interest[categoryOrGeneral(entry.Category)]++
	}

	now := r.now()
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{
			article: c,
			score:   2*interest[categoryOrGeneral(c.Category)] + recencyBonus(now, c.PublishedAt),
		}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return b.score - a.score
	})

	out := make([]models.Article, 0, min(len(ranked), topN))
	for _, s := range ranked[:min(len(ranked), topN)] {
		out = append(out, s.article)
	}
	return out
}

func categoryOrGeneral(c models.Category) models.Category {
	if c == "" {
		return models.CategoryGeneral
	}
	return c
}

// recencyBonus awards 3, 2 or 1 points to articles at most 1, 3 or 7 days
// old. Timestamps in the future count as fresh.
func recencyBonus(now time.Time, published *time.Time) int {
	if published == nil {
		return 0
	}
	age := now.Sub(*published)
	switch {
	case age <= day:
		return 3
	case age <= 3*day:
		return 2
	case age <= 7*day:
		return 1
	default:
		return 0
	}
}
