package analysis

import (
	"context"
	"sync"

	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/nlp"
)

// patternExtractor runs the rule-based extractor and counts calls per text.
type patternExtractor struct {
	mu    sync.Mutex
	calls map[string]int
}

func newPatternExtractor() *patternExtractor {
	return &patternExtractor{calls: make(map[string]int)}
}

func (p *patternExtractor) Extract(_ context.Context, text string) []models.Entity {
	p.mu.Lock()
	p.calls[text]++
	p.mu.Unlock()
	return nlp.ExtractPatterns(text)
}

func (p *patternExtractor) total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		n += c
	}
	return n
}

// emptyExtractor never finds anything.
type emptyExtractor struct{}

func (emptyExtractor) Extract(context.Context, string) []models.Entity { return []models.Entity{} }

func article(id, title, description string) models.Article {
	return models.Article{ArticleID: id, Title: title, Description: description}
}

// fixedExtractor returns preset entities keyed by article text.
type fixedExtractor map[string][]models.Entity

func (f fixedExtractor) Extract(_ context.Context, text string) []models.Entity {
	return f[text]
}

func gpe(texts ...string) []models.Entity {
	out := make([]models.Entity, len(texts))
	for i, text := range texts {
		out[i] = models.Entity{Text: text, Label: models.LabelGPE}
	}
	return out
}
