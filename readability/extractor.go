// Package readability provides a go-readability implementation of
// furnex.TextExtractor, an alternative to the trafilatura extractor.
package readability

import (
	"strings"

	"github.com/furnex/furnex"
	readability "github.com/go-shiori/go-readability"
)

// Ensure Extractor implements furnex.TextExtractor at compile time.
var _ furnex.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract readable page text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns normalized plain text.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", furnex.Errorf(furnex.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	return furnex.NormalizeText(article.TextContent), nil
}
