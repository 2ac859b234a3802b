package feeds

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/mmcdole/gofeed"
)

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// parseFeedItems converts gofeed items into articles for the given region
// and category. Items with empty Title or URL are skipped.
func parseFeedItems(feed *gofeed.Feed, region models.Region, category models.Category) []models.Article {
	var articles []models.Article
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		var publishedAt *time.Time
		if item.PublishedParsed != nil {
			t := *item.PublishedParsed
			publishedAt = &t
		}

		var image string
		if item.Image != nil {
			image = item.Image.URL
		}

		articles = append(articles, models.Article{
			Title:       strings.TrimSpace(item.Title),
			Description: stripHTML(item.Description),
			Content:     stripHTML(item.Content),
			URL:         item.Link,
			Image:       image,
			Source:      feed.Title,
			Category:    category,
			Region:      region,
			PublishedAt: publishedAt,
		})
	}

	return articles
}

// stripHTML removes HTML tags from s and unescapes HTML entities.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(clean))
}
