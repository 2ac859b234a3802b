package nlp

import (
	"context"
	"log/slog"

	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/jdkato/prose/v2"
)

// Compile-time interface check.
var _ Extractor = ProseExtractor{}

// ProseExtractor runs the prose averaged-perceptron NER model locally and
// appends the pattern entities, so numeric labels (MONEY, DATE, PERCENT)
// are still reported. It is deterministic and never fails.
type ProseExtractor struct{}

// Extract implements Extractor. The error is always nil; if the model cannot
// process text, only the pattern entities are returned.
func (ProseExtractor) Extract(_ context.Context, text string) ([]models.Entity, error) {
	patterns := ExtractPatterns(text)

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
	)
	if err != nil {
		slog.Debug("prose tokenisation failed", "error", err)
		return patterns, nil
	}

	ents := doc.Entities()
	entities := make([]models.Entity, 0, len(ents)+len(patterns))
	for _, ent := range ents {
		entities = append(entities, models.Entity{Text: ent.Text, Label: ent.Label})
	}
	return append(entities, patterns...), nil
}
