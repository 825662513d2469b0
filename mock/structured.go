package mock

import "github.com/furnex/furnex"

var _ furnex.StructuredDataExtractor = (*StructuredDataExtractor)(nil)

// StructuredDataExtractor is a mock implementation of
// furnex.StructuredDataExtractor.
type StructuredDataExtractor struct {
	ExtractFn func(html string) ([]string, error)
}

func (e *StructuredDataExtractor) Extract(html string) ([]string, error) {
	return e.ExtractFn(html)
}
