package models

import "time"

// Category is a news category as reported by the article feed. Unknown values
// are carried verbatim; ranking only compares strings.
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryBusiness      Category = "business"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
)

// Categories returns all feed categories in canonical order.
func Categories() []Category {
	return []Category{
		CategoryGeneral, CategoryBusiness, CategorySports,
		CategoryTechnology, CategoryEntertainment, CategoryHealth,
	}
}

// Valid reports whether c is one of the feed categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Region is a feed country code.
type Region string

const (
	RegionIndia        Region = "in"
	RegionUnitedStates Region = "us"
)

// Valid reports whether r is a supported region.
func (r Region) Valid() bool {
	return r == RegionIndia || r == RegionUnitedStates
}

// Article is a single news article delivered by the article feed. It is
// immutable once fetched.
type Article struct {
	ArticleID   string     `json:"articleId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content,omitempty"`
	URL         string     `json:"url"`
	Image       string     `json:"image,omitempty"`
	Source      string     `json:"source,omitempty"`
	Category    Category   `json:"category"`
	Region      Region     `json:"region"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Text returns the title and description joined by a single space, which is
// the text every entity extraction runs over.
func (a Article) Text() string {
	return a.Title + " " + a.Description
}

// RelatedArticle is an article annotated with the entities it shares with a
// target article.
type RelatedArticle struct {
	Article
	SimilarityScore int      `json:"similarityScore"`
	CommonEntities  []string `json:"commonEntities"`
}
