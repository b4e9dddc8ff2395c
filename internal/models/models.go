package models

// LookupRequest is the input of a single vocabulary batch.
type LookupRequest struct {
	Text          string
	MinWordLength int
}

// DefinitionEntry is the definition returned for one candidate word.
type DefinitionEntry struct {
	Word         string `json:"word"`
	Definition   string `json:"meaning"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
	Example      string `json:"example,omitempty"`
	Icon         string `json:"icon,omitempty"`
}

type LookupResult struct {
	Meanings        []DefinitionEntry `json:"meanings"`
	TotalWordsFound int               `json:"totalWordsFound"`
	ProcessedWords  int               `json:"processedWords"`
}
