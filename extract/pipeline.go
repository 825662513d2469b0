// Package extract provides the product extraction pipeline.
// It coordinates page fetching, structured-data scraping, entity
// recognition, and keyword analysis, and merges the three signal
// sources into the final candidate list.
package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/furnex/furnex"
)

// Ensure Pipeline implements furnex.ProductExtractor at compile time.
var _ furnex.ProductExtractor = (*Pipeline)(nil)

// Pipeline runs the full extraction for a single URL.
//
// Every signal source degrades independently: a failed fetch, a text
// extraction error, or an unavailable recognizer reduces that source
// to empty output and a log line, never a request failure.
type Pipeline struct {
	Fetcher    furnex.Fetcher
	Text       furnex.TextExtractor
	Structured furnex.StructuredDataExtractor

	// Entities is optional. A nil recognizer means the NER signal is
	// unavailable (e.g. the model failed to load) and contributes
	// nothing.
	Entities furnex.EntityRecognizer

	// Vocabulary for keyword analysis. Defaults to
	// furnex.DefaultVocabulary.
	Vocabulary furnex.Vocabulary

	// EntityLabels is the allow-set for entity filtering. Defaults to
	// furnex.DefaultEntityLabels.
	EntityLabels []string

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// ExtractProducts fetches the page and returns the merged product
// candidates. The page is fetched twice: once for text analysis and
// once, independently, for structured data, so that one failing fetch
// does not take out the other signal source.
//
// A page where neither source yields data produces an empty Result
// with no methods, not an error.
func (p *Pipeline) ExtractProducts(ctx context.Context, url string) (*furnex.Result, error) {
	if err := furnex.ValidateURL(url); err != nil {
		return nil, err
	}

	text := p.pageText(ctx, url)
	structured := p.structuredCandidates(ctx, url)

	var lists [][]string
	var methods []string

	if len(structured) > 0 {
		lists = append(lists, structured)
		methods = append(methods, furnex.MethodStructuredData)
	}
	if text != "" {
		lists = append(lists, p.entityCandidates(ctx, text))
		methods = append(methods, furnex.MethodNER)

		lists = append(lists, furnex.KeywordCandidates(text, p.vocabulary()))
		methods = append(methods, furnex.MethodKeywordAnalysis)
	}

	products, total := furnex.MergeCandidates(lists...)

	return &furnex.Result{
		URL:        url,
		Products:   products,
		TotalCount: total,
		Methods:    methods,
	}, nil
}

// pageText fetches the page and extracts readable text. Any failure
// degrades this source to "".
func (p *Pipeline) pageText(ctx context.Context, url string) string {
	begin := time.Now()
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		p.logger().Warn("page fetch failed", "url", url, "error", err)
		return ""
	}

	text, err := p.Text.ExtractText(html)
	if err != nil {
		p.logger().Warn("text extraction failed", "url", url, "error", err)
		return ""
	}

	p.logger().Debug("page text extracted",
		"url", url,
		"bytes", len(html),
		"content_hash", xxhash.Sum64String(html),
		"duration", time.Since(begin),
	)
	return text
}

// structuredCandidates fetches the page again and scrapes structured
// data. Any failure degrades this source to nil.
func (p *Pipeline) structuredCandidates(ctx context.Context, url string) []string {
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		p.logger().Warn("structured data fetch failed", "url", url, "error", err)
		return nil
	}

	candidates, err := p.Structured.Extract(html)
	if err != nil {
		p.logger().Warn("structured data extraction failed", "url", url, "error", err)
		return nil
	}
	return candidates
}

// entityCandidates runs NER over truncated page text and filters the
// result. An absent or failing recognizer degrades to nil.
func (p *Pipeline) entityCandidates(ctx context.Context, text string) []string {
	if p.Entities == nil {
		return nil
	}

	entities, err := p.Entities.Recognize(ctx, furnex.TruncateForNER(text))
	if err != nil {
		p.logger().Warn("entity recognition failed", "error", err)
		return nil
	}
	return furnex.FilterEntities(entities, p.EntityLabels)
}

func (p *Pipeline) vocabulary() furnex.Vocabulary {
	if p.Vocabulary != nil {
		return p.Vocabulary
	}
	return furnex.DefaultVocabulary()
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
