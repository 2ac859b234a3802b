package feeds

import (
	"testing"
	"time"

	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/mmcdole/gofeed"
)

func TestParseFeedItems(t *testing.T) {
	published := time.Now().Add(-12 * time.Hour)

	tests := []struct {
		name      string
		items     []*gofeed.Item
		wantCount int
	}{
		{
			name: "valid item",
			items: []*gofeed.Item{
				{Title: "Rates held", Link: "https://example.com/rates", PublishedParsed: &published},
			},
			wantCount: 1,
		},
		{
			name: "nil published date is included",
			items: []*gofeed.Item{
				{Title: "No Date", Link: "https://example.com/nodate"},
			},
			wantCount: 1,
		},
		{
			name: "empty title is skipped",
			items: []*gofeed.Item{
				{Title: "", Link: "https://example.com/notitle"},
			},
			wantCount: 0,
		},
		{
			name: "empty URL is skipped",
			items: []*gofeed.Item{
				{Title: "No URL", Link: ""},
			},
			wantCount: 0,
		},
		{
			name: "mixed items",
			items: []*gofeed.Item{
				{Title: "Good", Link: "https://example.com/good"},
				{Title: "", Link: "https://example.com/notitle"},
				{Title: "Also Good", Link: "https://example.com/also"},
			},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := &gofeed.Feed{Items: tt.items}
			articles := parseFeedItems(feed, models.RegionIndia, models.CategoryBusiness)

			if got := len(articles); got != tt.wantCount {
				t.Errorf("got %d articles, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestParseFeedItems_FieldMapping(t *testing.T) {
	pubTime := time.Now().Add(-24 * time.Hour)

	feed := &gofeed.Feed{
		Title: "City Desk",
		Items: []*gofeed.Item{
			{
				Title:           "  Council approves budget ",
				Link:            "https://example.com/budget",
				Description:     "A <b>record</b> budget &amp; more",
				Content:         "<p>Full text</p>",
				Image:           &gofeed.Image{URL: "https://example.com/budget.jpg"},
				PublishedParsed: &pubTime,
			},
		},
	}

	articles := parseFeedItems(feed, models.RegionUnitedStates, models.CategoryGeneral)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}

	a := articles[0]

	if a.Title != "Council approves budget" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.URL != "https://example.com/budget" {
		t.Errorf("URL = %q", a.URL)
	}
	if a.Description != "A record budget & more" {
		t.Errorf("Description = %q", a.Description)
	}
	if a.Content != "Full text" {
		t.Errorf("Content = %q", a.Content)
	}
	if a.Image != "https://example.com/budget.jpg" {
		t.Errorf("Image = %q", a.Image)
	}
	if a.Source != "City Desk" {
		t.Errorf("Source = %q", a.Source)
	}
	if a.Region != models.RegionUnitedStates || a.Category != models.CategoryGeneral {
		t.Errorf("Region/Category = %q/%q", a.Region, a.Category)
	}
	if a.PublishedAt == nil || !a.PublishedAt.Equal(pubTime) {
		t.Errorf("PublishedAt = %v, want %v", a.PublishedAt, pubTime)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes simple tags",
			input: "<p>Hello <b>world</b></p>",
			want:  "Hello world",
		},
		{
			name:  "unescapes HTML entities",
			input: "Tom &amp; Jerry &lt;3",
			want:  "Tom & Jerry <3",
		},
		{
			name:  "trims surrounding whitespace",
			input: "\n  <div>headline</div>  ",
			want:  "headline",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripHTML(tt.input)
			if got != tt.want {
				t.Errorf("stripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
