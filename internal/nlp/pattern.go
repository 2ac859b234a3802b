package nlp

import (
	"context"
	"regexp"
	"strings"

	"github.com/hoanghai1803/newslens/internal/models"
)

// Compile-time interface check.
var _ Extractor = PatternExtractor{}

// patternCountries are matched by literal, case-sensitive containment.
var patternCountries = []string{
	"India", "United States", "China", "Russia", "Japan", "Germany", "France",
	"UK", "Canada", "Australia", "Brazil", "Mexico", "South Korea", "Italy", "Spain",
}

var (
	orgPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Z][a-z]+ (Inc|Corp|Company|Ltd|LLC)\b`),
		regexp.MustCompile(`\b[A-Z][a-z]+ (University|College|School)\b`),
		regexp.MustCompile(`\b[A-Z][a-z]+ (Government|Ministry|Department)\b`),
	}
	moneyPattern   = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?`)
	yearPattern    = regexp.MustCompile(`\b\d{4}\b`)
	percentPattern = regexp.MustCompile(`\d+(?:\.\d+)?%`)
)

const (
	countryScore = 0.9
	orgScore     = 0.8
	moneyScore   = 0.9
	dateScore    = 0.8
	percentScore = 0.9
)

// PatternExtractor extracts entities with fixed lexical rules. It never
// fails and makes no network calls.
type PatternExtractor struct{}

// Extract implements Extractor. The error is always nil.
func (PatternExtractor) Extract(_ context.Context, text string) ([]models.Entity, error) {
	return ExtractPatterns(text), nil
}

// ExtractPatterns applies the lexical rules to text in a fixed order:
// countries, organisations, money, years, percentages. Matches from
// different rules may overlap and are neither sorted nor deduplicated, so the
// output is a pure function of the input.
func ExtractPatterns(text string) []models.Entity {
	entities := []models.Entity{}

	for _, country := range patternCountries {
		if strings.Contains(text, country) {
			entities = append(entities, models.Entity{Text: country, Label: models.LabelGPE, Score: countryScore})
		}
	}

	for _, re := range orgPatterns {
		entities = appendMatches(entities, re, text, models.LabelOrg, orgScore)
	}

	entities = appendMatches(entities, moneyPattern, text, models.LabelMoney, moneyScore)
	entities = appendMatches(entities, yearPattern, text, models.LabelDate, dateScore)
	entities = appendMatches(entities, percentPattern, text, models.LabelPercent, percentScore)

	return entities
}

func appendMatches(dst []models.Entity, re *regexp.Regexp, text, label string, score float64) []models.Entity {
	for _, m := range re.FindAllString(text, -1) {
		dst = append(dst, models.Entity{Text: m, Label: label, Score: score})
	}
	return dst
}
