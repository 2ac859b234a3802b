package analysis

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/hoanghai1803/newslens/internal/models"
)

func relatedIDs(related []models.RelatedArticle) []string {
	ids := make([]string, len(related))
	for i, r := range related {
		ids[i] = r.ArticleID
	}
	return ids
}

func TestRelated_SharedEntityOverlap(t *testing.T) {
	target := article("t", "India and China sign pact", "")
	a := article("a", "Trade with India grows", "")
	b := article("b", "Local weather", "")

	got := NewEngine(newPatternExtractor(), 1).Related(context.Background(), target, []models.Article{b, a}, 5)

	if len(got) != 1 {
		t.Fatalf("got %d related articles, want 1: %+v", len(got), got)
	}
	if got[0].ArticleID != "a" {
		t.Errorf("related = %q, want a", got[0].ArticleID)
	}
	if got[0].SimilarityScore != 1 {
		t.Errorf("SimilarityScore = %d, want 1", got[0].SimilarityScore)
	}
	if !reflect.DeepEqual(got[0].CommonEntities, []string{"india"}) {
		t.Errorf("CommonEntities = %v, want [india]", got[0].CommonEntities)
	}
}

func TestRelated_OrderingAndLimit(t *testing.T) {
	target := article("t", "India China Japan summit", "")
	candidates := []models.Article{
		article("one", "India votes", ""),
		article("three", "India China Japan trade", ""),
		article("two", "China and Japan", ""),
		article("also-one", "Japan weather", ""),
	}
	engine := NewEngine(newPatternExtractor(), 1)

	got := engine.Related(context.Background(), target, candidates, 10)
	if want := []string{"three", "two", "one", "also-one"}; !reflect.DeepEqual(relatedIDs(got), want) {
		t.Errorf("order = %v, want %v", relatedIDs(got), want)
	}

	got = engine.Related(context.Background(), target, candidates, 2)
	if want := []string{"three", "two"}; !reflect.DeepEqual(relatedIDs(got), want) {
		t.Errorf("limited order = %v, want %v", relatedIDs(got), want)
	}
}

func TestRelated_SkipsTarget(t *testing.T) {
	target := article("t", "India news", "")
	candidates := []models.Article{target, article("x", "India again", "")}

	got := NewEngine(newPatternExtractor(), 1).Related(context.Background(), target, candidates, 5)

	if want := []string{"x"}; !reflect.DeepEqual(relatedIDs(got), want) {
		t.Errorf("got %v, want %v", relatedIDs(got), want)
	}
}

func TestRelated_CaseInsensitive(t *testing.T) {
	target := article("t", "target", "")
	cand := article("c", "candidate", "")
	ex := fixedExtractor{
		target.Text(): gpe("UNITED STATES"),
		cand.Text():   gpe("United States"),
	}

	got := NewEngine(ex, 1).Related(context.Background(), target, []models.Article{cand}, 5)

	if len(got) != 1 || got[0].CommonEntities[0] != "united states" {
		t.Errorf("got %+v, want one match on united states", got)
	}
}

func TestRelated_RepeatedTargetEntitiesCountTwice(t *testing.T) {
	target := article("t", "target", "")
	cand := article("c", "candidate", "")
	ex := fixedExtractor{
		target.Text(): gpe("India", "india"),
		cand.Text():   gpe("India"),
	}

	got := NewEngine(ex, 1).Related(context.Background(), target, []models.Article{cand}, 5)

	if len(got) != 1 || got[0].SimilarityScore != 2 {
		t.Errorf("got %+v, want score 2", got)
	}
}

func TestRelated_ExaminesFirstFiftyCandidates(t *testing.T) {
	target := article("t", "India budget", "")
	var candidates []models.Article
	for i := range 50 {
		candidates = append(candidates, article(fmt.Sprint(i), fmt.Sprintf("filler %d", i), ""))
	}
	candidates = append(candidates, article("late", "India late story", ""))

	got := NewEngine(newPatternExtractor(), 1).Related(context.Background(), target, candidates, 5)

	if len(got) != 0 {
		t.Errorf("got %v, want no matches beyond the first 50 candidates", relatedIDs(got))
	}
}

func TestRelated_EmptyResults(t *testing.T) {
	target := article("t", "India", "")
	candidates := []models.Article{article("a", "India", "")}
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name       string
		ctx        context.Context
		ex         EntityExtractor
		candidates []models.Article
		limit      int
	}{
		{"zero limit", context.Background(), newPatternExtractor(), candidates, 0},
		{"no candidates", context.Background(), newPatternExtractor(), nil, 5},
		{"target without entities", context.Background(), emptyExtractor{}, candidates, 5},
		{"cancelled context", cancelled, newPatternExtractor(), candidates, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEngine(tt.ex, 1).Related(tt.ctx, target, tt.candidates, tt.limit)
			if got == nil || len(got) != 0 {
				t.Errorf("got %+v, want empty non-nil slice", got)
			}
		})
	}
}

func TestRelated_RepeatCallsAgree(t *testing.T) {
	target := article("t", "India China Japan summit", "")
	candidates := []models.Article{
		article("one", "India votes", ""),
		article("three", "India China Japan trade", ""),
		article("two", "China and Japan", ""),
		article("none", "Local weather", ""),
	}
	engine := NewEngine(newPatternExtractor(), 1)

	first := engine.Related(context.Background(), target, candidates, 5)
	second := engine.Related(context.Background(), target, candidates, 5)

	if len(first) == 0 {
		t.Fatal("expected related articles")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second call = %+v, want %+v", second, first)
	}
}
