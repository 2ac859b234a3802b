package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hoanghai1803/newslens/internal/metrics"
	"github.com/hoanghai1803/newslens/internal/models"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// Compile-time interface check.
var _ Extractor = (*RemoteExtractor)(nil)

// DefaultRemoteURL is the Hugging Face token-classification model used when
// no endpoint is configured.
const DefaultRemoteURL = "https://api-inference.huggingface.co/models/Jean-Baptiste/roberta-large-ner-english"

const (
	defaultRemoteTimeout = 10 * time.Second
	maxResponseBytes     = 1 << 20
)

// RemoteConfig holds the settings for a RemoteExtractor.
type RemoteConfig struct {
	APIKey        string
	URL           string
	Timeout       time.Duration
	RatePerSecond float64 // <= 0 disables local rate limiting
}

// StatusError reports a non-2xx response from the inference endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// RemoteExtractor delegates extraction to a Hugging Face inference endpoint.
// Each call makes exactly one request, bounded by the configured timeout,
// guarded by a circuit breaker and paced by a rate limiter.
type RemoteExtractor struct {
	apiKey  string
	url     string
	timeout time.Duration
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]models.Entity]
}

// NewRemoteExtractor creates a RemoteExtractor. It returns ErrNoCredential
// when cfg.APIKey is empty.
func NewRemoteExtractor(cfg RemoteConfig) (*RemoteExtractor, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoCredential
	}
	if cfg.URL == "" {
		cfg.URL = DefaultRemoteURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRemoteTimeout
	}

	limit := rate.Inf
	burst := 1
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
		burst = max(1, int(cfg.RatePerSecond))
	}

	return &RemoteExtractor{
		apiKey:  cfg.APIKey,
		url:     cfg.URL,
		timeout: cfg.Timeout,
		client:  &http.Client{},
		limiter: rate.NewLimiter(limit, burst),
		cb:      newBreaker(),
	}, nil
}

// newBreaker opens after at least 10 requests in a one-minute window with a
// failure rate of 60% or more, and probes again after 30 seconds.
func newBreaker() *gobreaker.CircuitBreaker[[]models.Entity] {
	metrics.CircuitBreakerState.Set(0)

	return gobreaker.NewCircuitBreaker[[]models.Entity](gobreaker.Settings{
		Name:        "remote-ner",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// A caller abandoning its request says nothing about endpoint health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.Set(stateValue(to))
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// hfRequest is the request body for the inference endpoint.
type hfRequest struct {
	Inputs string `json:"inputs"`
}

// hfEntity is one token-classification record with aggregation enabled.
type hfEntity struct {
	Word        string  `json:"word"`
	EntityGroup string  `json:"entity_group"`
	Start       *int    `json:"start"`
	End         *int    `json:"end"`
	Score       float64 `json:"score"`
}

// Extract implements Extractor.
func (e *RemoteExtractor) Extract(ctx context.Context, text string) ([]models.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// Time spent waiting for a budget slot counts against the call timeout.
	if err := e.limiter.Wait(ctx); err != nil {
		metrics.RemoteExtractionFailures.WithLabelValues("rate_limited").Inc()
		return nil, fmt.Errorf("remote extraction: %w: %w", ErrRateLimited, err)
	}

	start := time.Now()
	entities, err := e.cb.Execute(func() ([]models.Entity, error) {
		return e.callAPI(ctx, text)
	})
	metrics.RemoteExtractionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RemoteExtractionFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, fmt.Errorf("remote extraction: %w", err)
	}
	return entities, nil
}

// callAPI makes a single request to the inference endpoint and maps the
// response records into entities.
func (e *RemoteExtractor) callAPI(ctx context.Context, text string) ([]models.Entity, error) {
	body, err := json.Marshal(hfRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("calling inference API", "url", e.url, "chars", len(text))

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var records []hfEntity
	if err := json.Unmarshal(respBody, &records); err != nil {
		return nil, &DecodeError{Err: err}
	}

	entities := make([]models.Entity, 0, len(records))
	for _, rec := range records {
		word := strings.TrimSpace(rec.Word)
		if word == "" {
			continue
		}
		entities = append(entities, models.Entity{
			Text:  word,
			Label: rec.EntityGroup,
			Score: rec.Score,
			Start: rec.Start,
			End:   rec.End,
		})
	}
	return entities, nil
}

// DecodeError reports a response body that is not a list of entity records.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "parsing response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// failureReason classifies err for the failure metric.
func failureReason(err error) string {
	var statusErr *StatusError
	var decodeErr *DecodeError
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &decodeErr):
		return "decode"
	default:
		return "transport"
	}
}
