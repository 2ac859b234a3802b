package ai

import (
	"fmt"
	"strings"
)

const summarizeSystemPrompt = `You are a news editor. Summarize the following news article in 2-3 sentences, focusing on the key points: who is involved, what happened, and why it matters. Be factual and neutral. Do NOT include any prefix like "Summary:" and start directly with the first sentence.`

// truncatedSummaryWords is the number of description words kept when a
// provider call fails.
const truncatedSummaryWords = 25

// SummarizePrompt builds the system and user prompts for the article
// summarization operation.
func SummarizePrompt(article ArticleEntry) (systemPrompt string, userPrompt string) {
	systemPrompt = summarizeSystemPrompt

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", article.Title)
	if article.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", article.Source)
	}
	b.WriteString("Article:\n")
	b.WriteString(article.content())

	userPrompt = b.String()
	return systemPrompt, userPrompt
}

// FallbackSummary keeps the first two ". "-separated sentences of a
// description and makes sure the result ends with a period.
func FallbackSummary(description string) string {
	sentences := strings.SplitN(description, ". ", 3)
	summary := strings.Join(sentences[:min(len(sentences), 2)], ". ")
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

// TruncatedSummary keeps the first 25 words of a description followed by an
// ellipsis.
func TruncatedSummary(description string) string {
	words := strings.Fields(description)
	return strings.Join(words[:min(len(words), truncatedSummaryWords)], " ") + "..."
}
