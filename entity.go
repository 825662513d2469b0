package furnex

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
)

// MaxEntityInput is the number of characters of page text passed to
// the NER model. Longer pages are truncated, so entities past this
// bound are not found.
const MaxEntityInput = 2000

// minEntityScore is the confidence threshold below which entities are
// discarded.
const minEntityScore = 0.5

// DefaultEntityLabels is the allow-set of entity labels considered
// product-name candidates.
var DefaultEntityLabels = []string{"ORG", "PRODUCT", "MISC"}

// nonWordRE matches characters stripped from entity spans before the
// length check. Hyphens are preserved (product names like "HEMNES-2").
var nonWordRE = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// Entity is a span of text labeled by a NER model.
type Entity struct {
	// Text is the raw span as returned by the model.
	Text string

	// Label is the entity category, e.g. ORG, PRODUCT, MISC.
	Label string

	// Score is the model confidence in [0, 1].
	Score float64
}

// EntityRecognizer labels spans of text with entity categories.
// Implementations wrap an NLP library or an ONNX transformer model.
type EntityRecognizer interface {
	// Recognize returns the entities found in text.
	Recognize(ctx context.Context, text string) ([]Entity, error)

	// Close releases model resources.
	Close() error
}

// TruncateForNER bounds text to MaxEntityInput characters before it is
// passed to a recognizer.
func TruncateForNER(text string) string {
	if utf8.RuneCountInString(text) <= MaxEntityInput {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxEntityInput])
}

// FilterEntities reduces recognized entities to product-name
// candidates. An entity is kept when its score exceeds the confidence
// threshold, its label is in the allow-set, the raw span is longer
// than 2 characters and not purely numeric, and the cleaned span is
// still longer than 2 characters. The cleaned span is returned.
//
// An empty labels slice means DefaultEntityLabels.
func FilterEntities(entities []Entity, labels []string) []string {
	if len(labels) == 0 {
		labels = DefaultEntityLabels
	}
	allowed := mapset.NewThreadUnsafeSet(labels...)

	var candidates []string
	for _, e := range entities {
		word := strings.TrimSpace(e.Text)
		if e.Score <= minEntityScore || !allowed.Contains(e.Label) {
			continue
		}
		if utf8.RuneCountInString(word) <= 2 || isNumeric(word) {
			continue
		}
		clean := nonWordRE.ReplaceAllString(word, "")
		if utf8.RuneCountInString(clean) > 2 {
			candidates = append(candidates, clean)
		}
	}
	return candidates
}
