package ai

import (
	"strings"
	"testing"
)

func TestSummarizePrompt(t *testing.T) {
	article := ArticleEntry{
		Title:       "Monsoon arrives early",
		Source:      "The Daily",
		Description: "Rains reached Kerala a week ahead of schedule.",
	}

	systemPrompt, userPrompt := SummarizePrompt(article)

	if !strings.Contains(systemPrompt, "2-3 sentences") {
		t.Error("system prompt should ask for 2-3 sentences")
	}
	for _, want := range []string{article.Title, article.Source, article.Description} {
		if !strings.Contains(userPrompt, want) {
			t.Errorf("user prompt should contain %q", want)
		}
	}

	article.FullContent = "Full body text."
	_, userPrompt = SummarizePrompt(article)
	if !strings.Contains(userPrompt, "Full body text.") || strings.Contains(userPrompt, article.Description) {
		t.Errorf("user prompt should prefer full content: %q", userPrompt)
	}
}

func TestFallbackSummary(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"two of three sentences", "One. Two. Three.", "One. Two."},
		{"single sentence without period", "Breaking news", "Breaking news."},
		{"already terminated", "Only one.", "Only one."},
		{"empty", "", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackSummary(tt.description); got != tt.want {
				t.Errorf("FallbackSummary(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestTruncatedSummary(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := TruncatedSummary(long)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if n := len(strings.Fields(strings.TrimSuffix(got, "..."))); n != 25 {
		t.Errorf("kept %d words, want 25", n)
	}

	if got := TruncatedSummary("short text"); got != "short text..." {
		t.Errorf("TruncatedSummary(short) = %q", got)
	}
}
