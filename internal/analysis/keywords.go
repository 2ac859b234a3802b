package analysis

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hoanghai1803/newslens/internal/models"
)

// minKeywordRunes excludes short function words ("the", "and", "for").
const minKeywordRunes = 4

// TrendingKeywords counts lower-cased whitespace-separated words of at least
// four characters across the titles and descriptions of articles, and
// returns the limit most frequent with first-seen order breaking ties.
func TrendingKeywords(articles []models.Article, limit int) []models.KeywordCount {
	if limit <= 0 {
		return []models.KeywordCount{}
	}

	counts := make(map[string]int)
	var order []string
	for _, article := range articles {
		for _, word := range strings.Fields(strings.ToLower(article.Text())) {
			if utf8.RuneCountInString(word) < minKeywordRunes {
				continue
			}
			if _, ok := counts[word]; !ok {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	keywords := make([]models.KeywordCount, 0, len(order))
	for _, word := range order {
		keywords = append(keywords, models.KeywordCount{Keyword: word, Count: counts[word]})
	}
	slices.SortStableFunc(keywords, func(a, b models.KeywordCount) int {
		return b.Count - a.Count
	})
	return keywords[:min(len(keywords), limit)]
}
