package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hoanghai1803/newslens/internal/models"
)

func TestHistory_AddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := store.AddToHistory(ctx, models.ReadingHistoryEntry{
			ArticleID: id,
			Title:     "Story " + id,
			URL:       "https://example.com/" + id,
			Category:  models.CategorySports,
			ReadAt:    base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("AddToHistory(%s) error: %v", id, err)
		}
	}

	got, err := store.ListHistory(ctx, 0)
	if err != nil {
		t.Fatalf("ListHistory() error: %v", err)
	}

	wantIDs := []string{"c", "b", "a"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d entries, want %d", len(got), len(wantIDs))
	}
	for i, e := range got {
		if e.ArticleID != wantIDs[i] {
			t.Errorf("entry %d = %q, want %q", i, e.ArticleID, wantIDs[i])
		}
	}
	if got[0].Category != models.CategorySports {
		t.Errorf("Category = %q", got[0].Category)
	}
	if !got[0].ReadAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("ReadAt = %v", got[0].ReadAt)
	}
}

func TestHistory_ReReadMovesToFront(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	add := func(id string, at time.Time) {
		t.Helper()
		if err := store.AddToHistory(ctx, models.ReadingHistoryEntry{ArticleID: id, Title: id, URL: id, ReadAt: at}); err != nil {
			t.Fatalf("AddToHistory(%s) error: %v", id, err)
		}
	}
	add("a", base)
	add("b", base.Add(time.Minute))
	add("a", base.Add(2*time.Minute))

	got, err := store.ListHistory(ctx, 0)
	if err != nil {
		t.Fatalf("ListHistory() error: %v", err)
	}
	if len(got) != 2 || got[0].ArticleID != "a" || got[1].ArticleID != "b" {
		t.Errorf("got %+v, want [a b]", got)
	}
}

func TestHistory_KeepsMostRecentFifty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := range MaxHistoryEntries + 5 {
		id := fmt.Sprintf("article-%02d", i)
		if err := store.AddToHistory(ctx, models.ReadingHistoryEntry{
			ArticleID: id, Title: id, URL: id, ReadAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("AddToHistory(%s) error: %v", id, err)
		}
	}

	got, err := store.ListHistory(ctx, 100)
	if err != nil {
		t.Fatalf("ListHistory() error: %v", err)
	}
	if len(got) != MaxHistoryEntries {
		t.Fatalf("got %d entries, want %d", len(got), MaxHistoryEntries)
	}
	if got[len(got)-1].ArticleID != "article-05" {
		t.Errorf("oldest kept = %q, want article-05", got[len(got)-1].ArticleID)
	}

	limited, err := store.ListHistory(ctx, 3)
	if err != nil {
		t.Fatalf("ListHistory(3) error: %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("got %d entries, want 3", len(limited))
	}
}
