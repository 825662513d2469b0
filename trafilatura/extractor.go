// Package trafilatura provides a go-trafilatura implementation of
// furnex.TextExtractor for extracting readable page text.
package trafilatura

import (
	"strings"

	"github.com/furnex/furnex"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements furnex.TextExtractor at compile time.
var _ furnex.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main-content plain text
// from HTML, with boilerplate (nav, footer, sidebar, ads) removed.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return furnex.NormalizeText(result.ContentText), nil
}
