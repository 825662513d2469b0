package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/furnex/furnex"
	"github.com/furnex/furnex/extract"
	"github.com/furnex/furnex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Pipeline implements furnex.ProductExtractor at compile time.
var _ furnex.ProductExtractor = (*extract.Pipeline)(nil)

const testURL = "https://shop.example.com/sofas"

func newPipeline() *extract.Pipeline {
	return &extract.Pipeline{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		},
		Text: &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return "", nil
			},
		},
		Structured: &mock.StructuredDataExtractor{
			ExtractFn: func(html string) ([]string, error) {
				return nil, nil
			},
		},
	}
}

func TestPipeline_ExtractProducts(t *testing.T) {
	t.Parallel()

	t.Run("rejects malformed URLs before fetching", func(t *testing.T) {
		t.Parallel()

		p := newPipeline()
		p.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("fetch must not be called for malformed URLs")
				return "", nil
			},
		}

		_, err := p.ExtractProducts(context.Background(), "ftp://example.com")

		require.Error(t, err)
		assert.Equal(t, furnex.EINVALID, furnex.ErrorCode(err))
	})

	t.Run("merges all three signal sources", func(t *testing.T) {
		t.Parallel()

		p := newPipeline()
		p.Text = &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return "The comfortable Oslo sofa ships this week.", nil
			},
		}
		p.Structured = &mock.StructuredDataExtractor{
			ExtractFn: func(html string) ([]string, error) {
				return []string{"Oslo Sofa 3-Seat"}, nil
			},
		}
		p.Entities = &mock.EntityRecognizer{
			RecognizeFn: func(ctx context.Context, text string) ([]furnex.Entity, error) {
				return []furnex.Entity{{Text: "Oslo", Label: "MISC", Score: 0.92}}, nil
			},
		}

		result, err := p.ExtractProducts(context.Background(), testURL)

		require.NoError(t, err)
		assert.Equal(t, testURL, result.URL)
		assert.Equal(t, []string{
			furnex.MethodStructuredData,
			furnex.MethodNER,
			furnex.MethodKeywordAnalysis,
		}, result.Methods)
		assert.Contains(t, result.Products, "Oslo Sofa 3-Seat")
		assert.Contains(t, result.Products, "Oslo")
		assert.Contains(t, result.Products, "The comfortable Oslo sofa ships this week")
		assert.Equal(t, len(result.Products), result.TotalCount)
	})

	t.Run("fetch failure degrades to an empty result", func(t *testing.T) {
		t.Parallel()

		p := newPipeline()
		p.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection refused")
			},
		}

		result, err := p.ExtractProducts(context.Background(), testURL)

		require.NoError(t, err)
		assert.Empty(t, result.Products)
		assert.Empty(t, result.Methods)
		assert.Zero(t, result.TotalCount)
	})

	t.Run("structured data alone still produces results", func(t *testing.T) {
		t.Parallel()

		fetchCount := 0
		p := newPipeline()
		p.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetchCount++
				if fetchCount == 1 {
					return "", errors.New("timeout")
				}
				return "<html></html>", nil
			},
		}
		p.Structured = &mock.StructuredDataExtractor{
			ExtractFn: func(html string) ([]string, error) {
				return []string{"Bergen Armchair"}, nil
			},
		}

		result, err := p.ExtractProducts(context.Background(), testURL)

		require.NoError(t, err)
		assert.Equal(t, []string{furnex.MethodStructuredData}, result.Methods)
		assert.Equal(t, []string{"Bergen Armchair"}, result.Products)
	})

	t.Run("text alone reports both text-based methods", func(t *testing.T) {
		t.Parallel()

		p := newPipeline()
		p.Text = &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return "A velvet sofa for the den.", nil
			},
		}

		result, err := p.ExtractProducts(context.Background(), testURL)

		require.NoError(t, err)
		assert.Equal(t, []string{furnex.MethodNER, furnex.MethodKeywordAnalysis}, result.Methods)
		assert.Contains(t, result.Products, "A velvet sofa for the den")
	})

	t.Run("nil recognizer degrades the NER signal only", func(t *testing.T) {
		t.Parallel()

		p := newPipeline()
		p.Text = &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return "A velvet sofa for the den.", nil
			},
		}
		p.Entities = nil

		result, err := p.ExtractProducts(context.Background(), testURL)

		require.NoError(t, err)
		assert.Contains(t, result.Methods, furnex.MethodNER)
		assert.Contains(t, result.Products, "A velvet sofa for the den")
	})

	t.Run("recognizer error degrades the NER signal only", func(t *testing.T) {
		t.Parallel()

		p := newPipeline()
		p.Text = &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return "A velvet sofa for the den.", nil
			},
		}
		p.Entities = &mock.EntityRecognizer{
			RecognizeFn: func(ctx context.Context, text string) ([]furnex.Entity, error) {
				return nil, errors.New("model not loaded")
			},
		}

		result, err := p.ExtractProducts(context.Background(), testURL)

		require.NoError(t, err)
		assert.Contains(t, result.Products, "A velvet sofa for the den")
	})

	t.Run("recognizer receives truncated text", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, 0, 5000)
		for i := 0; i < 1000; i++ {
			long = append(long, "sofa "...)
		}

		var gotLen int
		p := newPipeline()
		p.Text = &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return string(long), nil
			},
		}
		p.Entities = &mock.EntityRecognizer{
			RecognizeFn: func(ctx context.Context, text string) ([]furnex.Entity, error) {
				gotLen = len(text)
				return nil, nil
			},
		}

		_, err := p.ExtractProducts(context.Background(), testURL)

		require.NoError(t, err)
		assert.Equal(t, furnex.MaxEntityInput, gotLen)
	})

	t.Run("output is capped at the maximum product count", func(t *testing.T) {
		t.Parallel()

		var many []string
		for i := 0; i < 60; i++ {
			many = append(many, "product candidate number "+string(rune('A'+i%26))+string(rune('a'+i/26)))
		}

		p := newPipeline()
		p.Structured = &mock.StructuredDataExtractor{
			ExtractFn: func(html string) ([]string, error) {
				return many, nil
			},
		}

		result, err := p.ExtractProducts(context.Background(), testURL)

		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.Products), furnex.MaxProducts)
		assert.Greater(t, result.TotalCount, furnex.MaxProducts)
	})
}
