package furnex

import (
	"context"
	"strings"
)

// Extraction method names reported in Result.Methods.
const (
	MethodStructuredData  = "structured_data"
	MethodNER             = "ner_model"
	MethodKeywordAnalysis = "keyword_analysis"
)

// Result holds the outcome of extracting product names from a page.
type Result struct {
	// URL is the page the products were extracted from.
	URL string `json:"url"`

	// Products is the merged candidate list, longest first, capped at
	// MaxProducts entries.
	Products []string `json:"products"`

	// TotalCount is the number of unique candidates before truncation.
	TotalCount int `json:"products_count"`

	// Methods lists the signal sources that contributed to Products.
	Methods []string `json:"methods_used"`
}

// Fetcher retrieves HTML from URLs.
// Implementations may use plain HTTP or browser automation to handle
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the HTML content of the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}

// TextExtractor extracts readable plain text from HTML pages,
// removing markup and boilerplate.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}

// StructuredDataExtractor extracts product name candidates from
// embedded structured data (JSON-LD blocks and meta tags).
type StructuredDataExtractor interface {
	Extract(html string) ([]string, error)
}

// ProductExtractor runs the full extraction pipeline for a single URL.
// Implemented by extract.Pipeline; consumed by the HTTP server and CLI.
type ProductExtractor interface {
	ExtractProducts(ctx context.Context, url string) (*Result, error)
}

// ValidateURL rejects URLs before any fetch is attempted.
// Only absolute http and https URLs are accepted.
func ValidateURL(rawURL string) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return Errorf(EINVALID, "URL must start with http:// or https://")
	}
	return nil
}
