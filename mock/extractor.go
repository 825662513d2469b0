package mock

import (
	"context"

	"github.com/furnex/furnex"
)

var _ furnex.ProductExtractor = (*ProductExtractor)(nil)

// ProductExtractor is a mock implementation of furnex.ProductExtractor.
type ProductExtractor struct {
	ExtractProductsFn func(ctx context.Context, url string) (*furnex.Result, error)
}

func (e *ProductExtractor) ExtractProducts(ctx context.Context, url string) (*furnex.Result, error) {
	return e.ExtractProductsFn(ctx, url)
}
