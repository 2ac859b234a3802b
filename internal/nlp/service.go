package nlp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hoanghai1803/newslens/internal/metrics"
	"github.com/hoanghai1803/newslens/internal/models"
)

// Fallback extractor names accepted by Options.Fallback.
const (
	FallbackPattern = "pattern"
	FallbackProse   = "prose"
)

// Options configures NewService. All configuration is resolved here, before
// the Service exists; a Service never changes its extractors afterwards.
type Options struct {
	APIKey        string // empty disables the remote path
	APIURL        string
	Timeout       time.Duration
	RatePerSecond float64
	Fallback      string // "pattern" (default) or "prose"
}

// Service presents a single extraction interface over a primary extractor
// and a deterministic fallback.
type Service struct {
	primary  Extractor
	fallback Extractor
}

// NewService builds a Service from opts. The remote extractor is used as the
// primary only when opts.APIKey is set; its absence is not an error.
func NewService(opts Options) (*Service, error) {
	var fallback Extractor
	switch opts.Fallback {
	case "", FallbackPattern:
		fallback = PatternExtractor{}
	case FallbackProse:
		fallback = ProseExtractor{}
	default:
		return nil, fmt.Errorf("unsupported fallback extractor: %s", opts.Fallback)
	}

	if opts.APIKey == "" {
		return Compose(nil, fallback), nil
	}

	remote, err := NewRemoteExtractor(RemoteConfig{
		APIKey:        opts.APIKey,
		URL:           opts.APIURL,
		Timeout:       opts.Timeout,
		RatePerSecond: opts.RatePerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("creating remote extractor: %w", err)
	}
	return Compose(remote, fallback), nil
}

// Compose returns a Service that tries primary first and falls back to
// fallback. A nil primary means the fallback always answers; a nil fallback
// means the pattern extractor.
func Compose(primary, fallback Extractor) *Service {
	if fallback == nil {
		fallback = PatternExtractor{}
	}
	return &Service{primary: primary, fallback: fallback}
}

// RemoteEnabled reports whether a primary extractor is configured.
func (s *Service) RemoteEnabled() bool {
	return s.primary != nil
}

// Extract returns the entities found in text. It tries the primary extractor
// once and, on any failure, answers from the fallback. It never returns an
// error and never retries.
func (s *Service) Extract(ctx context.Context, text string) []models.Entity {
	if s.primary != nil {
		entities, err := s.primary.Extract(ctx, text)
		if err == nil {
			metrics.EntityExtractions.WithLabelValues(metrics.PathRemote).Inc()
			return entities
		}
		slog.Debug("remote extraction unavailable, using fallback", "error", err)
	}

	metrics.EntityExtractions.WithLabelValues(metrics.PathFallback).Inc()
	entities, err := s.fallback.Extract(ctx, text)
	if err != nil {
		slog.Warn("fallback extraction failed", "error", err)
		return []models.Entity{}
	}
	return entities
}
