package mock

import "github.com/furnex/furnex"

var _ furnex.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of furnex.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
