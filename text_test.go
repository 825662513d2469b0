package furnex_test

import (
	"testing"

	"github.com/furnex/furnex"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace runs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a b c", furnex.NormalizeText("a  b\n\t c"))
	})

	t.Run("replaces special characters with spaces", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Sofa EKTORP 299", furnex.NormalizeText("Sofa «EKTORP» ©299"))
	})

	t.Run("keeps sentence punctuation and currency markers", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Only $299! Really? Yes, really.", furnex.NormalizeText("Only $299! Really? Yes, really."))
	})

	t.Run("preserves Cyrillic letters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "угловой диван", furnex.NormalizeText("угловой   диван"))
	})
}
