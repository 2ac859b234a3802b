package ai

// ProviderConfig holds the configuration needed to create an AI provider.
type ProviderConfig struct {
	Provider string // "anthropic" | "openai"
	APIKey   string
	Model    string
}

// ArticleEntry is the article representation sent to a provider.
type ArticleEntry struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Description string `json:"description"`
	FullContent string `json:"full_content,omitempty"`
}

// content returns the text to summarize, preferring the extracted full text.
func (e ArticleEntry) content() string {
	if e.FullContent != "" {
		return e.FullContent
	}
	return e.Description
}
