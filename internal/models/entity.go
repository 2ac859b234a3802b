package models

// Entity labels produced by the pattern extractor. Remote models may report
// other labels; those are passed through unchanged.
const (
	LabelGPE     = "GPE"
	LabelOrg     = "ORG"
	LabelMoney   = "MONEY"
	LabelDate    = "DATE"
	LabelPercent = "PERCENT"
	LabelPerson  = "PERSON"
)

// Entity is a span of text classified into a semantic category.
type Entity struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score,omitempty"`
	Start *int    `json:"start,omitempty"`
	End   *int    `json:"end,omitempty"`
}

// EntityFrequency counts how often an entity, identified by its text and
// label, occurred across a batch of articles.
type EntityFrequency struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// KeywordCount counts occurrences of a single lower-cased keyword.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}
