// Package analysis aggregates extracted entities across article batches:
// trending entities, trending keywords and entity-overlap relatedness.
package analysis

import (
	"context"
	"sync"

	"github.com/hoanghai1803/newslens/internal/models"
	"golang.org/x/sync/errgroup"
)

// EntityExtractor is the non-failing extraction interface the analysis
// engines consume. *nlp.Service satisfies it.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) []models.Entity
}

// memo caches extraction results by text for the lifetime of a single
// Trending or Related call. It is never shared between calls.
type memo struct {
	extractor EntityExtractor
	mu        sync.Mutex
	results   map[string][]models.Entity
}

func newMemo(ex EntityExtractor) *memo {
	return &memo{extractor: ex, results: make(map[string][]models.Entity)}
}

func (m *memo) Extract(ctx context.Context, text string) []models.Entity {
	m.mu.Lock()
	cached, ok := m.results[text]
	m.mu.Unlock()
	if ok {
		return cached
	}

	entities := m.extractor.Extract(ctx, text)

	m.mu.Lock()
	m.results[text] = entities
	m.mu.Unlock()
	return entities
}

// extractAll extracts entities for every text and returns them by index.
// With concurrency <= 1 the calls run one at a time, in order. Larger values
// fan out with at most that many calls in flight; since results are stored
// by index the output is identical either way. The only error is the
// context's.
func extractAll(ctx context.Context, ex EntityExtractor, texts []string, concurrency int) ([][]models.Entity, error) {
	results := make([][]models.Entity, len(texts))

	if concurrency <= 1 {
		for i, text := range texts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = ex.Extract(ctx, text)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ex.Extract(gctx, text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
