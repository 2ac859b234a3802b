package analysis

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/hoanghai1803/newslens/internal/models"
)

// maxRelatedCandidates bounds the number of candidates examined per request.
const maxRelatedCandidates = 50

// Engine finds articles that share extracted entities with a target.
type Engine struct {
	extractor   EntityExtractor
	concurrency int
}

// NewEngine creates an Engine. concurrency <= 1 extracts candidates one at a
// time.
func NewEngine(ex EntityExtractor, concurrency int) *Engine {
	return &Engine{extractor: ex, concurrency: concurrency}
}

// Related ranks candidates by the number of target entity texts they share
// (case-insensitive). Only the first 50 candidates are examined, and the
// target itself (same ArticleID) is skipped. CommonEntities lists the
// matching target texts in target order, so a text the target mentions twice
// counts twice. Candidates sharing nothing are dropped; ties keep candidate
// order.
func (e *Engine) Related(ctx context.Context, target models.Article, candidates []models.Article, limit int) []models.RelatedArticle {
	related := []models.RelatedArticle{}
	if limit <= 0 || len(candidates) == 0 {
		return related
	}

	ex := newMemo(e.extractor)
	targetTexts := lowerTexts(ex.Extract(ctx, target.Text()))
	if len(targetTexts) == 0 {
		return related
	}

	pool := make([]models.Article, 0, min(len(candidates), maxRelatedCandidates))
	for _, c := range candidates[:min(len(candidates), maxRelatedCandidates)] {
		if c.ArticleID == target.ArticleID {
			continue
		}
		pool = append(pool, c)
	}

	texts := make([]string, len(pool))
	for i, c := range pool {
		texts[i] = c.Text()
	}

	results, err := extractAll(ctx, ex, texts, e.concurrency)
	if err != nil {
		slog.Warn("related article extraction aborted", "error", err)
		return related
	}

	for i, candidate := range pool {
		present := make(map[string]bool, len(results[i]))
		for _, text := range lowerTexts(results[i]) {
			present[text] = true
		}

		var common []string
		for _, text := range targetTexts {
			if present[text] {
				common = append(common, text)
			}
		}
		if len(common) == 0 {
			continue
		}

		related = append(related, models.RelatedArticle{
			Article:         candidate,
			SimilarityScore: len(common),
			CommonEntities:  common,
		})
	}

	slices.SortStableFunc(related, func(a, b models.RelatedArticle) int {
		return b.SimilarityScore - a.SimilarityScore
	})
	return related[:min(len(related), limit)]
}

func lowerTexts(entities []models.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = strings.ToLower(e.Text)
	}
	return out
}
