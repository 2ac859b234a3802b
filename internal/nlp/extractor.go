// Package nlp extracts named entities from article text.
//
// A Service composes a primary extractor (the remote inference endpoint, when
// a credential is configured) with a deterministic local fallback. Callers
// only ever see the Service, which never fails.
package nlp

import (
	"context"
	"errors"

	"github.com/hoanghai1803/newslens/internal/models"
)

// Extractor turns text into entities. Implementations may fail; the Service
// is the error boundary that hides those failures from callers.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]models.Entity, error)
}

var (
	// ErrNoCredential is returned when a remote extractor is requested
	// without an API key.
	ErrNoCredential = errors.New("no remote extraction credential configured")

	// ErrRateLimited is returned when no slot in the local request budget
	// frees up before the call's deadline.
	ErrRateLimited = errors.New("remote extraction rate limit exceeded")
)
