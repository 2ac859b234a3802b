package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hoanghai1803/newslens/internal/feeds"
	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/hoanghai1803/newslens/internal/storage"
)

// HeadlineFetcher returns the current headlines for a region and category.
type HeadlineFetcher interface {
	Headlines(ctx context.Context, region models.Region, category models.Category) ([]models.Article, error)
}

// ArticleExtractor fetches the readable full text of an article page.
type ArticleExtractor interface {
	ExtractArticle(ctx context.Context, url string) (string, error)
}

// FeedDefaults is the region and category used when neither the request nor
// the stored preferences name one.
type FeedDefaults struct {
	Region   models.Region
	Category models.Category
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so error messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// writeJSON encodes v as JSON and writes it to the response with the given
// HTTP status code. Content-Type is always set to application/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response with the given HTTP status code.
// The response body is {"error": "message"}.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// The returned error is suitable for a 400 response.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("Invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

// validationMessage turns validator errors into a single readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "url", "http_url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}

// queryInt parses a positive integer query parameter, returning def when the
// parameter is absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

// resolveFeed picks the region and category for a request. Explicit values
// win, then the stored defaultRegion/defaultCategory preferences, then defs.
func resolveFeed(ctx context.Context, store *storage.Store, region, category string, defs FeedDefaults) (models.Region, models.Category, error) {
	r := models.Region(region)
	if r == "" {
		r = storedPreference(ctx, store, prefDefaultRegion, defs.Region)
	}
	c := models.Category(category)
	if c == "" {
		c = storedPreference(ctx, store, prefDefaultCategory, defs.Category)
	}

	if !r.Valid() {
		return "", "", fmt.Errorf("unsupported region %q", r)
	}
	if !c.Valid() {
		return "", "", fmt.Errorf("unsupported category %q", c)
	}
	return r, c, nil
}

// storedPreference reads a string preference, falling back to def when it is
// unset or unreadable.
func storedPreference[T ~string](ctx context.Context, store *storage.Store, key string, def T) T {
	if store == nil {
		return def
	}

	var v string
	if err := store.GetPreference(ctx, key, &v); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("failed to read preference", "key", key, "error", err)
		}
		return def
	}
	if v == "" {
		return def
	}
	return T(v)
}

// articlePayload is an article as sent by clients. Only the title and URL
// are required; the ID is derived from the URL when absent.
type articlePayload struct {
	ArticleID   string     `json:"articleId"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	URL         string     `json:"url" validate:"required,url"`
	Image       string     `json:"image"`
	Source      string     `json:"source"`
	Category    string     `json:"category"`
	Region      string     `json:"region"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (p articlePayload) article() models.Article {
	id := p.ArticleID
	if id == "" {
		id = feeds.ArticleID(p.URL)
	}
	return models.Article{
		ArticleID:   id,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
		URL:         p.URL,
		Image:       p.Image,
		Source:      p.Source,
		Category:    models.Category(p.Category),
		Region:      models.Region(p.Region),
		PublishedAt: p.PublishedAt,
	}
}
