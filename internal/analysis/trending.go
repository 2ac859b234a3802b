package analysis

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/hoanghai1803/newslens/internal/metrics"
	"github.com/hoanghai1803/newslens/internal/models"
)

// maxTrendingArticles bounds the number of extraction calls per request.
const maxTrendingArticles = 20

// Aggregator ranks entities by how often they occur across a batch of
// articles.
type Aggregator struct {
	extractor   EntityExtractor
	concurrency int
}

// NewAggregator creates an Aggregator. concurrency <= 1 extracts articles
// one at a time.
func NewAggregator(ex EntityExtractor, concurrency int) *Aggregator {
	return &Aggregator{extractor: ex, concurrency: concurrency}
}

// Trending extracts entities from the first 20 articles and returns the
// limit most frequent ones, keyed by (text, label) and ordered by count
// descending with first-seen order breaking ties.
//
// When nothing can be extracted (no articles, a cancelled context, or no
// entities at all) it answers with MockEntities instead, so the result is
// non-empty whenever limit > 0.
func (a *Aggregator) Trending(ctx context.Context, articles []models.Article, limit int) []models.EntityFrequency {
	if limit <= 0 {
		return []models.EntityFrequency{}
	}
	if len(articles) == 0 {
		return mockFallback(articles, limit, "no articles")
	}

	batch := articles[:min(len(articles), maxTrendingArticles)]
	texts := make([]string, len(batch))
	for i, article := range batch {
		texts[i] = article.Text()
	}

	results, err := extractAll(ctx, newMemo(a.extractor), texts, a.concurrency)
	if err != nil {
		return mockFallback(articles, limit, err.Error())
	}

	table := newFrequencyTable()
	for _, entities := range results {
		for _, e := range entities {
			table.add(e.Text, e.Label, 1)
		}
	}

	ranked := table.ranked()
	if len(ranked) == 0 {
		return mockFallback(articles, limit, "no entities extracted")
	}
	return ranked[:min(len(ranked), limit)]
}

func mockFallback(articles []models.Article, limit int, reason string) []models.EntityFrequency {
	slog.Info("serving mock trending entities", "reason", reason, "articles", len(articles))
	metrics.TrendingMockFallbacks.Inc()
	return MockEntities(articles, limit)
}

type entityKey struct {
	text  string
	label string
}

// frequencyTable accumulates counts per (text, label) and remembers the
// order in which keys were first seen.
type frequencyTable struct {
	counts map[entityKey]int
	order  []entityKey
}

func newFrequencyTable() *frequencyTable {
	return &frequencyTable{counts: make(map[entityKey]int)}
}

func (t *frequencyTable) add(text, label string, n int) {
	key := entityKey{text: text, label: label}
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

func (t *frequencyTable) has(text, label string) bool {
	_, ok := t.counts[entityKey{text: text, label: label}]
	return ok
}

// ranked returns the table sorted by count descending; equal counts keep
// first-seen order.
func (t *frequencyTable) ranked() []models.EntityFrequency {
	out := make([]models.EntityFrequency, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, models.EntityFrequency{Text: key.text, Label: key.label, Count: t.counts[key]})
	}
	sortByCount(out)
	return out
}

func sortByCount(freqs []models.EntityFrequency) {
	slices.SortStableFunc(freqs, func(a, b models.EntityFrequency) int {
		return b.Count - a.Count
	})
}

// baselineEntities is the fixed table the mock fallback pads with.
var baselineEntities = []models.EntityFrequency{
	{Text: "India", Label: models.LabelGPE, Count: 5},
	{Text: "United States", Label: models.LabelGPE, Count: 4},
	{Text: "China", Label: models.LabelGPE, Count: 3},
	{Text: "Technology", Label: models.LabelOrg, Count: 3},
	{Text: "Economy", Label: models.LabelOrg, Count: 2},
	{Text: "Politics", Label: models.LabelOrg, Count: 2},
	{Text: "2024", Label: models.LabelDate, Count: 2},
	{Text: "Government", Label: models.LabelOrg, Count: 2},
}

var mockCountries = []string{
	"India", "United States", "China", "Russia", "Japan",
	"Germany", "France", "UK", "Canada", "Australia",
}

var (
	mockCountryPatterns = compileCountryPatterns(mockCountries)
	mockMoneyPattern    = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?`)
	mockYearPattern     = regexp.MustCompile(`\b20\d{2}\b`)
)

func compileCountryPatterns(countries []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(countries))
	for i, c := range countries {
		out[i] = regexp.MustCompile("(?i)" + regexp.QuoteMeta(c))
	}
	return out
}

// MockEntities derives a plausible trending list without any extractor. It
// scans the joined article text for a short country list (case-insensitive
// occurrence counts), dollar amounts and 20xx years (count 1 each, first
// seen order), then pads with the fixed baseline table. Findings take
// priority: baseline entries already found are dropped and padding only
// fills what remains of limit. The selection is returned ordered by count
// descending. Baseline counts are synthetic, so a padded entry can rank
// above a real finding.
func MockEntities(articles []models.Article, limit int) []models.EntityFrequency {
	if limit <= 0 {
		return []models.EntityFrequency{}
	}

	texts := make([]string, len(articles))
	for i, article := range articles {
		texts[i] = article.Text()
	}
	allText := strings.Join(texts, " ")

	found := newFrequencyTable()
	for i, re := range mockCountryPatterns {
		if n := len(re.FindAllStringIndex(allText, -1)); n > 0 {
			found.add(mockCountries[i], models.LabelGPE, n)
		}
	}
	for _, amount := range mockMoneyPattern.FindAllString(allText, -1) {
		if !found.has(amount, models.LabelMoney) {
			found.add(amount, models.LabelMoney, 1)
		}
	}
	for _, year := range mockYearPattern.FindAllString(allText, -1) {
		if !found.has(year, models.LabelDate) {
			found.add(year, models.LabelDate, 1)
		}
	}

	combined := make([]models.EntityFrequency, 0, len(found.order)+len(baselineEntities))
	for _, key := range found.order {
		combined = append(combined, models.EntityFrequency{Text: key.text, Label: key.label, Count: found.counts[key]})
	}
	for _, base := range baselineEntities {
		if !found.has(base.Text, base.Label) {
			combined = append(combined, base)
		}
	}

	combined = combined[:min(len(combined), limit)]
	sortByCount(combined)
	return combined
}
