// Package goquery provides a goquery-based implementation of
// furnex.StructuredDataExtractor that mines JSON-LD blocks and meta
// tags for product names.
package goquery

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/furnex/furnex"
)

// maxWalkDepth bounds recursion into nested JSON-LD structures so a
// maliciously deep payload cannot exhaust the stack.
const maxWalkDepth = 32

// minTitleLen filters out page titles too short to name a product.
const minTitleLen = 6

// metaKeywords gates meta-description candidates: the description is
// only a candidate when it mentions furniture at all.
var metaKeywords = []string{"chair", "table", "sofa", "bed", "диван", "стол", "кровать"}

// Ensure Extractor implements furnex.StructuredDataExtractor at compile time.
var _ furnex.StructuredDataExtractor = (*Extractor)(nil)

// Extractor extracts product name candidates from embedded structured
// data: schema.org JSON-LD records, Open Graph and Twitter card
// titles, the meta description, and the page title.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns all product name candidates found in the page.
// JSON-LD blocks that fail to decode are skipped; they contribute no
// candidates and never fail the extraction.
func (e *Extractor) Extract(rawHTML string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, furnex.Errorf(furnex.EINVALID, "failed to parse HTML: %v", err)
	}

	var products []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return
		}
		// When a block holds an array of records only the first is
		// used; the rest are discarded. Bug-compatible with the
		// original extractor.
		if arr, ok := data.([]any); ok {
			if len(arr) == 0 {
				return
			}
			data = arr[0]
		}
		products = append(products, walk(data, 0)...)
	})

	products = append(products, metaCandidates(doc)...)
	return products, nil
}

// walk recursively collects product names from a decoded JSON-LD
// value. Product and IndividualProduct records contribute their name;
// ItemList and BreadcrumbList records contribute the name of every
// list element. Nested maps and arrays are always descended into, so
// product records are found regardless of the top-level type.
func walk(data any, depth int) []string {
	if depth > maxWalkDepth {
		return nil
	}

	var products []string
	switch v := data.(type) {
	case map[string]any:
		switch v["@type"] {
		case "Product", "IndividualProduct":
			if name := toText(v["name"]); name != "" {
				products = append(products, name)
			}
		case "ItemList", "BreadcrumbList":
			if items, ok := v["itemListElement"].([]any); ok {
				for _, item := range items {
					if m, ok := item.(map[string]any); ok {
						if name, ok := m["name"]; ok {
							products = append(products, toText(name))
						}
					}
				}
			}
		}
		for _, value := range v {
			switch value.(type) {
			case map[string]any, []any:
				products = append(products, walk(value, depth+1)...)
			}
		}
	case []any:
		for _, item := range v {
			products = append(products, walk(item, depth+1)...)
		}
	}
	return products
}

// metaCandidates extracts candidates from meta tags and the page title.
func metaCandidates(doc *goquery.Document) []string {
	var products []string

	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && content != "" {
		products = append(products, content)
	}

	if content, ok := doc.Find(`meta[name="twitter:title"]`).First().Attr("content"); ok && content != "" {
		products = append(products, content)
	}

	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && content != "" {
		lower := strings.ToLower(content)
		for _, keyword := range metaKeywords {
			if strings.Contains(lower, keyword) {
				products = append(products, content)
				break
			}
		}
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); utf8.RuneCountInString(title) >= minTitleLen {
		products = append(products, title)
	}

	return products
}

// toText coerces a JSON-LD name value to a string. Non-string scalars
// appear in the wild (numeric model names); nil and empty values
// coerce to "".
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
