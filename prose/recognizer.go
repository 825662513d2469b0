// Package prose provides a pure-Go furnex.EntityRecognizer backed by
// the prose NLP library. It needs no model files and serves as the
// fallback when no ONNX model is configured.
package prose

import (
	"context"

	"github.com/furnex/furnex"
	"github.com/jdkato/prose/v2"
)

// proseScore is assigned to every entity: prose does not expose
// per-entity confidence, and 0.85 clears the pipeline threshold.
const proseScore = 0.85

// labelMap normalizes prose's label set to the coarse categories the
// entity filter understands.
var labelMap = map[string]string{
	"GPE":    "ORG",
	"PERSON": "MISC",
}

// Ensure Recognizer implements furnex.EntityRecognizer at compile time.
var _ furnex.EntityRecognizer = (*Recognizer)(nil)

// Recognizer labels text spans using prose's built-in NER model.
type Recognizer struct{}

// NewRecognizer creates a new Recognizer.
func NewRecognizer() *Recognizer {
	return &Recognizer{}
}

// Recognize returns the entities prose finds in text.
func (r *Recognizer) Recognize(ctx context.Context, text string) ([]furnex.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}

	var entities []furnex.Entity
	for _, ent := range doc.Entities() {
		label := ent.Label
		if mapped, ok := labelMap[label]; ok {
			label = mapped
		}
		entities = append(entities, furnex.Entity{
			Text:  ent.Text,
			Label: label,
			Score: proseScore,
		})
	}
	return entities, nil
}

// Close releases model resources. The prose model is process-global
// and needs no cleanup.
func (r *Recognizer) Close() error {
	return nil
}
