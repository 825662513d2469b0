package furnex

import (
	"sort"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
)

// MaxProducts caps the merged candidate list. Longer names tend to be
// more specific products, so the cap is applied after the length sort.
const MaxProducts = 20

// MergeCandidates combines candidate lists from the individual
// extractors into the final product list. Candidates are trimmed,
// dropped when 2 characters or shorter, deduplicated, sorted by length
// descending (lexicographic tie-break keeps the result deterministic),
// and truncated to MaxProducts.
//
// The second return value is the number of unique candidates before
// truncation.
func MergeCandidates(lists ...[]string) ([]string, int) {
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, list := range lists {
		for _, candidate := range list {
			candidate = strings.TrimSpace(candidate)
			if utf8.RuneCountInString(candidate) > 2 {
				seen.Add(candidate)
			}
		}
	}

	unique := seen.ToSlice()
	sort.Slice(unique, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(unique[i]), utf8.RuneCountInString(unique[j])
		if li != lj {
			return li > lj
		}
		return unique[i] < unique[j]
	})

	total := len(unique)
	if len(unique) > MaxProducts {
		unique = unique[:MaxProducts]
	}
	return unique, total
}
