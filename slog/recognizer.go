package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/furnex/furnex"
)

// Ensure LoggingRecognizer implements furnex.EntityRecognizer at compile time.
var _ furnex.EntityRecognizer = (*LoggingRecognizer)(nil)

// LoggingRecognizer wraps an EntityRecognizer with debug logging of
// inference calls.
type LoggingRecognizer struct {
	next   furnex.EntityRecognizer
	logger *slog.Logger
}

// NewLoggingRecognizer creates a new LoggingRecognizer.
func NewLoggingRecognizer(next furnex.EntityRecognizer, logger *slog.Logger) *LoggingRecognizer {
	return &LoggingRecognizer{next: next, logger: logger}
}

// Recognize delegates to the wrapped recognizer and logs entity count
// and inference duration.
func (r *LoggingRecognizer) Recognize(ctx context.Context, text string) ([]furnex.Entity, error) {
	begin := time.Now()
	entities, err := r.next.Recognize(ctx, text)
	if err != nil {
		r.logger.Warn("entity recognition failed",
			"chars", len(text),
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}

	r.logger.Debug("entity recognition",
		"chars", len(text),
		"entities", len(entities),
		"duration", time.Since(begin),
	)
	return entities, nil
}

// Close delegates to the wrapped recognizer.
func (r *LoggingRecognizer) Close() error {
	return r.next.Close()
}
