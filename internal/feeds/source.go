package feeds

import (
	"context"

	"github.com/hoanghai1803/newslens/internal/models"
)

// Source delivers top headlines for a region and category.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string
	// Endpoint is the URL the source requests, used for per-domain spacing.
	Endpoint() string
	// Headlines returns the source's current articles for the pair. Sources
	// that do not cover the pair return nil, nil.
	Headlines(ctx context.Context, region models.Region, category models.Category) ([]models.Article, error)
}

// HeadlineCache stores fetched headline batches per region and category.
type HeadlineCache interface {
	Get(ctx context.Context, region models.Region, category models.Category) ([]models.Article, bool, error)
	Set(ctx context.Context, region models.Region, category models.Category, articles []models.Article) error
}
