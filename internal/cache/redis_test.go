package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hoanghai1803/newslens/internal/models"
)

func TestHeadlineKey(t *testing.T) {
	if got := headlineKey(models.RegionIndia, models.CategorySports); got != "newslens:headlines:in:sports" {
		t.Errorf("headlineKey() = %q", got)
	}
}

// newTestCache connects to NEWSLENS_TEST_REDIS or skips the test.
func newTestCache(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("NEWSLENS_TEST_REDIS")
	if addr == "" {
		t.Skip("NEWSLENS_TEST_REDIS not set")
	}

	c, err := NewRedisCache(context.Background(), addr, time.Minute)
	if err != nil {
		t.Fatalf("connecting to redis: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	region, category := models.RegionUnitedStates, models.Category("test-"+time.Now().Format("150405.000"))

	if _, ok, err := c.Get(ctx, region, category); err != nil || ok {
		t.Fatalf("Get on empty key = ok %v, err %v; want miss", ok, err)
	}

	want := []models.Article{{ArticleID: "a", Title: "Headline", URL: "https://example.com/a"}}
	if err := c.Set(ctx, region, category, want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	t.Cleanup(func() { c.client.Del(ctx, headlineKey(region, category)) })

	got, ok, err := c.Get(ctx, region, category)
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if len(got) != 1 || got[0].Title != "Headline" {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if _, err := NewRedisCache(ctx, "127.0.0.1:1", time.Minute); err == nil {
		t.Error("expected connection error")
	}
}
