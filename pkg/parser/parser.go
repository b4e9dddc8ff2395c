// pkg/parser/parser.go
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrInvalidInput is returned when the extraction parameters are unusable.
var ErrInvalidInput = errors.New("invalid input")

// wordPattern matches maximal runs of ASCII word characters, the same runs
// a \b\w+\b scan yields.
var wordPattern = regexp.MustCompile(`\w+`)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// ExtractWords returns the distinct lowercase words of text that are at
// least minWordLength characters long, in order of first occurrence.
func (p *Parser) ExtractWords(text string, minWordLength int) ([]string, error) {
	if minWordLength < 1 {
		return nil, fmt.Errorf("%w: minimum word length must be positive, got %d", ErrInvalidInput, minWordLength)
	}

	seen := make(map[string]struct{})
	var words []string
	for _, token := range wordPattern.FindAllString(text, -1) {
		if len(token) < minWordLength {
			continue
		}
		word := strings.ToLower(token)
		if _, exists := seen[word]; exists {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}

	return words, nil
}

// ExtractText converts HTML content into plain text. Script and style
// elements are ignored. When selector is not empty only the matching
// elements contribute text.
func (p *Parser) ExtractText(content []byte, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	selection := doc.Find("body")
	if selector != "" {
		selection = doc.Find(selector)
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		// Collapse runs of whitespace left behind by markup
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, "\n"), nil
}
