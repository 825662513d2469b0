// Package onnx provides a furnex.EntityRecognizer that runs a BERT
// token-classification model through ONNX Runtime with a WordPiece
// tokenizer. It reproduces the dslim/bert-base-NER setup: per-token
// logits over the BIO label set, aggregated into entity groups with
// averaged confidence.
package onnx

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/furnex/furnex"
	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// labels is the BIO label set of the bert-base-NER checkpoint, in
// model output order.
var labels = []string{"O", "B-MISC", "I-MISC", "B-PER", "I-PER", "B-ORG", "I-ORG", "B-LOC", "I-LOC"}

// DefaultMaxSeqLen is the BERT positional-embedding limit.
const DefaultMaxSeqLen = 512

// Config holds the file locations the recognizer needs.
type Config struct {
	// ModelPath is the ONNX model file.
	ModelPath string

	// TokenizerPath is the tokenizer.json file matching the model.
	TokenizerPath string

	// LibraryPath optionally points at the ONNX Runtime shared
	// library. Empty means the platform default lookup.
	LibraryPath string

	// MaxSeqLen bounds the token sequence. Defaults to DefaultMaxSeqLen.
	MaxSeqLen int
}

// Ensure Recognizer implements furnex.EntityRecognizer at compile time.
var _ furnex.EntityRecognizer = (*Recognizer)(nil)

// Recognizer runs NER inference through an ONNX session.
// The session is not safe for concurrent Run calls; a mutex
// serializes inference.
type Recognizer struct {
	tk        *tokenizer.Tokenizer
	session   *ort.DynamicAdvancedSession
	maxSeqLen int
	mu        sync.Mutex
}

// initOnce guards process-wide ONNX Runtime environment setup.
// Redundant initialization attempts are idempotent.
var initOnce sync.Once

// NewRecognizer loads the tokenizer and opens an ONNX session.
// Any failure here means the model is unavailable; callers degrade to
// an empty entity signal rather than treating this as fatal.
func NewRecognizer(cfg Config) (*Recognizer, error) {
	if cfg.ModelPath == "" || cfg.TokenizerPath == "" {
		return nil, furnex.Errorf(furnex.EINVALID, "NER model and tokenizer paths required")
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = DefaultMaxSeqLen
	}

	var initErr error
	initOnce.Do(func() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		if !ort.IsInitialized() {
			initErr = ort.InitializeEnvironment()
		}
	})
	if initErr != nil {
		return nil, fmt.Errorf("initializing onnxruntime: %w", initErr)
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer %q: %w", cfg.TokenizerPath, err)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"logits"}, nil)
	if err != nil {
		return nil, fmt.Errorf("opening model %q: %w", cfg.ModelPath, err)
	}

	return &Recognizer{tk: tk, session: session, maxSeqLen: cfg.MaxSeqLen}, nil
}

// Recognize tokenizes text, runs the model, and aggregates per-token
// predictions into entity groups.
func (r *Recognizer) Recognize(ctx context.Context, text string) ([]furnex.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	en, err := r.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenizing: %w", err)
	}

	ids := en.GetIds()
	mask := en.GetAttentionMask()
	typeIDs := en.GetTypeIds()
	tokens := en.GetTokens()
	special := en.GetSpecialTokenMask()

	n := len(ids)
	if n > r.maxSeqLen {
		n = r.maxSeqLen
	}
	if n == 0 {
		return nil, nil
	}

	logits, err := r.run(ids[:n], mask[:n], typeIDs[:n])
	if err != nil {
		return nil, err
	}

	return aggregate(tokens[:n], special[:n], logits), nil
}

// run executes one forward pass and returns per-token probabilities.
func (r *Recognizer) run(ids, mask, typeIDs []int) ([][]float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(ids)
	shape := ort.NewShape(1, int64(n))

	idsTensor, err := ort.NewTensor(shape, toInt64(ids))
	if err != nil {
		return nil, err
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, toInt64(mask))
	if err != nil {
		return nil, err
	}
	defer maskTensor.Destroy()

	typeTensor, err := ort.NewTensor(shape, toInt64(typeIDs))
	if err != nil {
		return nil, err
	}
	defer typeTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := r.session.Run([]ort.Value{idsTensor, maskTensor, typeTensor}, outputs); err != nil {
		return nil, fmt.Errorf("running model: %w", err)
	}
	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, furnex.Errorf(furnex.EINTERNAL, "model returned unexpected output type")
	}
	defer logitsTensor.Destroy()

	data := logitsTensor.GetData()
	if len(data) != n*len(labels) {
		return nil, furnex.Errorf(furnex.EINTERNAL, "model output size %d does not match %d tokens", len(data), n)
	}

	probs := make([][]float32, n)
	for i := 0; i < n; i++ {
		probs[i] = softmax(data[i*len(labels) : (i+1)*len(labels)])
	}
	return probs, nil
}

// Close releases the ONNX session. The runtime environment stays
// alive for other sessions in the process.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		err := r.session.Destroy()
		r.session = nil
		return err
	}
	return nil
}

// group accumulates contiguous tokens of one entity type.
type group struct {
	entityType string
	tokens     []string
	scoreSum   float32
	count      int
}

// aggregate implements the "simple" aggregation strategy: contiguous
// non-O tokens of the same type form one entity, a B- tag starts a new
// one, and the group confidence is the mean of token confidences.
func aggregate(tokens []string, special []int, probs [][]float32) []furnex.Entity {
	var entities []furnex.Entity
	var current *group

	flush := func() {
		if current == nil {
			return
		}
		entities = append(entities, furnex.Entity{
			Text:  joinWordpieces(current.tokens),
			Label: current.entityType,
			Score: float64(current.scoreSum) / float64(current.count),
		})
		current = nil
	}

	for i, tok := range tokens {
		if special[i] == 1 {
			continue
		}
		best, score := argmax(probs[i])
		label := labels[best]
		if label == "O" {
			flush()
			continue
		}

		prefix, entityType := label[:1], label[2:]
		if current != nil && entityType == current.entityType && prefix != "B" {
			current.tokens = append(current.tokens, tok)
			current.scoreSum += score
			current.count++
			continue
		}

		flush()
		current = &group{entityType: entityType, tokens: []string{tok}, scoreSum: score, count: 1}
	}
	flush()
	return entities
}

// joinWordpieces reconstructs surface text from WordPiece tokens:
// continuation pieces ("##x") attach to the previous token, everything
// else is space-separated.
func joinWordpieces(tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		if rest, ok := strings.CutPrefix(tok, "##"); ok {
			b.WriteString(rest)
			continue
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func softmax(logits []float32) []float32 {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	var sum float64
	out := make([]float32, len(logits))
	for i, v := range logits {
		e := math.Exp(float64(v - maxLogit))
		out[i] = float32(e)
		sum += e
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / sum)
	}
	return out
}

func argmax(probs []float32) (int, float32) {
	best, bestScore := 0, probs[0]
	for i, v := range probs[1:] {
		if v > bestScore {
			best, bestScore = i+1, v
		}
	}
	return best, bestScore
}

func toInt64(values []int) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}
