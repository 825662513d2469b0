package mock

import (
	"context"

	"github.com/furnex/furnex"
)

var _ furnex.EntityRecognizer = (*EntityRecognizer)(nil)

// EntityRecognizer is a mock implementation of furnex.EntityRecognizer.
type EntityRecognizer struct {
	RecognizeFn func(ctx context.Context, text string) ([]furnex.Entity, error)
	CloseFn     func() error
}

func (r *EntityRecognizer) Recognize(ctx context.Context, text string) ([]furnex.Entity, error) {
	return r.RecognizeFn(ctx, text)
}

func (r *EntityRecognizer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}
