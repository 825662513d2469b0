package goquery_test

import (
	"strings"
	"testing"

	"github.com/furnex/furnex"
	"github.com/furnex/furnex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements furnex.StructuredDataExtractor at compile time.
var _ furnex.StructuredDataExtractor = (*goquery.Extractor)(nil)

func page(body string) string {
	return `<!DOCTYPE html><html><head>` + body + `</head><body></body></html>`
}

func jsonLD(payload string) string {
	return `<script type="application/ld+json">` + payload + `</script>`
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts Product name from JSON-LD", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()
		got, err := ext.Extract(page(jsonLD(`{"@type": "Product", "name": "Oslo Sofa"}`)))

		require.NoError(t, err)
		assert.Contains(t, got, "Oslo Sofa")
	})

	t.Run("extracts IndividualProduct name", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()
		got, err := ext.Extract(page(jsonLD(`{"@type": "IndividualProduct", "name": "Bergen Armchair"}`)))

		require.NoError(t, err)
		assert.Contains(t, got, "Bergen Armchair")
	})

	t.Run("extracts every ItemList element name", func(t *testing.T) {
		t.Parallel()

		payload := `{"@type": "ItemList", "itemListElement": [
			{"name": "Chair A"},
			{"name": "Chair B"}
		]}`

		ext := goquery.NewExtractor()
		got, err := ext.Extract(page(jsonLD(payload)))

		require.NoError(t, err)
		assert.Contains(t, got, "Chair A")
		assert.Contains(t, got, "Chair B")
	})

	t.Run("extracts BreadcrumbList element names", func(t *testing.T) {
		t.Parallel()

		payload := `{"@type": "BreadcrumbList", "itemListElement": [
			{"name": "Living Room"},
			{"name": "Sofas"}
		]}`

		ext := goquery.NewExtractor()
		got, err := ext.Extract(page(jsonLD(payload)))

		require.NoError(t, err)
		assert.Contains(t, got, "Living Room")
		assert.Contains(t, got, "Sofas")
	})

	t.Run("finds product records nested inside other types", func(t *testing.T) {
		t.Parallel()

		payload := `{"@type": "WebPage", "mainEntity": {
			"@type": "Product", "name": "Nested Ottoman",
			"offers": {"@type": "Offer", "itemOffered": {"@type": "Product", "name": "Deep Ottoman"}}
		}}`

		ext := goquery.NewExtractor()
		got, err := ext.Extract(page(jsonLD(payload)))

		require.NoError(t, err)
		assert.Contains(t, got, "Nested Ottoman")
		assert.Contains(t, got, "Deep Ottoman")
	})

	t.Run("takes only the first element of a JSON-LD array", func(t *testing.T) {
		t.Parallel()

		payload := `[
			{"@type": "Product", "name": "First Product"},
			{"@type": "Product", "name": "Second Product"}
		]`

		ext := goquery.NewExtractor()
		got, err := ext.Extract(page(jsonLD(payload)))

		require.NoError(t, err)
		assert.Contains(t, got, "First Product")
		assert.NotContains(t, got, "Second Product")
	})

	t.Run("skips invalid JSON-LD blocks without failing", func(t *testing.T) {
		t.Parallel()

		html := page(jsonLD(`{not valid json`) + jsonLD(`{"@type": "Product", "name": "Valid Product"}`))

		ext := goquery.NewExtractor()
		got, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, got, "Valid Product")
	})

	t.Run("extracts Open Graph and Twitter card titles", func(t *testing.T) {
		t.Parallel()

		html := page(`<meta property="og:title" content="EKTORP Sofa - Shop">` +
			`<meta name="twitter:title" content="EKTORP Sofa">`)

		ext := goquery.NewExtractor()
		got, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, got, "EKTORP Sofa - Shop")
		assert.Contains(t, got, "EKTORP Sofa")
	})

	t.Run("keeps meta description only when it mentions furniture", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()

		got, err := ext.Extract(page(`<meta name="description" content="A comfortable sofa for your home">`))
		require.NoError(t, err)
		assert.Contains(t, got, "A comfortable sofa for your home")

		got, err = ext.Extract(page(`<meta name="description" content="Latest tech news and reviews">`))
		require.NoError(t, err)
		assert.NotContains(t, got, "Latest tech news and reviews")
	})

	t.Run("matches Russian keywords in meta description", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()
		got, err := ext.Extract(page(`<meta name="description" content="Купить диван недорого">`))

		require.NoError(t, err)
		assert.Contains(t, got, "Купить диван недорого")
	})

	t.Run("keeps page title only when longer than 5 characters", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()

		got, err := ext.Extract(page(`<title>MALM Bed Frame</title>`))
		require.NoError(t, err)
		assert.Contains(t, got, "MALM Bed Frame")

		got, err = ext.Extract(page(`<title>Shop</title>`))
		require.NoError(t, err)
		assert.NotContains(t, got, "Shop")
	})

	t.Run("survives deeply nested JSON-LD", func(t *testing.T) {
		t.Parallel()

		depth := 200
		payload := strings.Repeat(`{"nested":`, depth) + `{"@type":"Product","name":"Buried"}` + strings.Repeat(`}`, depth)

		ext := goquery.NewExtractor()
		got, err := ext.Extract(page(jsonLD(payload)))

		// The walk is depth-bounded; the buried record is out of
		// reach but extraction must not fail.
		require.NoError(t, err)
		assert.NotContains(t, got, "Buried")
	})

	t.Run("returns no candidates for a page without signals", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()
		got, err := ext.Extract(`<html><body><p>hello</p></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
