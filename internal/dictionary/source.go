package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mdanassaif/bigNweirdwords/internal/models"
)

// ErrNoDefinition is returned by a source that answered but had no usable
// definition for the word.
var ErrNoDefinition = errors.New("no definition")

// Source is one provider of word definitions.
type Source interface {
	Name() string
	Lookup(ctx context.Context, word string) (models.DefinitionEntry, error)
}

// Fetcher is the transport a Source uses. *fetcher.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FreeDictionarySource reads the dictionaryapi.dev entries API.
type FreeDictionarySource struct {
	baseURL string
	fetcher Fetcher
}

const DefaultFreeDictionaryURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

func NewFreeDictionarySource(baseURL string, f Fetcher) *FreeDictionarySource {
	if baseURL == "" {
		baseURL = DefaultFreeDictionaryURL
	}
	return &FreeDictionarySource{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: f,
	}
}

func (s *FreeDictionarySource) Name() string {
	return "freedictionary"
}

type freeDictionaryEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

func (s *FreeDictionarySource) Lookup(ctx context.Context, word string) (models.DefinitionEntry, error) {
	entry := models.DefinitionEntry{Word: word}

	body, err := s.fetcher.Fetch(ctx, s.baseURL+"/"+url.PathEscape(word))
	if err != nil {
		return entry, fmt.Errorf("error fetching definition: %w", err)
	}

	var entries []freeDictionaryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return entry, fmt.Errorf("error decoding definition: %w", err)
	}

	// Only the first sense of the first entry is used
	if len(entries) == 0 || len(entries[0].Meanings) == 0 {
		return entry, ErrNoDefinition
	}
	meaning := entries[0].Meanings[0]
	entry.PartOfSpeech = meaning.PartOfSpeech
	if len(meaning.Definitions) == 0 || strings.TrimSpace(meaning.Definitions[0].Definition) == "" {
		return entry, ErrNoDefinition
	}
	entry.Definition = meaning.Definitions[0].Definition
	entry.Example = meaning.Definitions[0].Example

	return entry, nil
}
