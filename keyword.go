package furnex

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// Sentence candidates outside these bounds are discarded: shorter
	// ones carry no context, longer ones are almost never a product
	// name.
	minSentenceLen = 10
	maxSentenceLen = 150

	// minWordLen is the minimum length of a word candidate.
	minWordLen = 4

	// minKeywordLen filters out vocabulary entries too short to be
	// meaningful substring matches.
	minKeywordLen = 3
)

var (
	sentenceSplitRE = regexp.MustCompile(`[.!?]`)
	wordRE          = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// KeywordCandidates extracts product-name candidates from plain text
// using vocabulary matching. Two kinds of candidates are produced:
// whole sentences that mention a furniture term, and individual word
// tokens that contain one as a substring.
func KeywordCandidates(text string, vocab Vocabulary) []string {
	if text == "" {
		return nil
	}

	var candidates []string
	candidates = append(candidates, sentenceCandidates(text, vocab)...)
	candidates = append(candidates, wordCandidates(text, vocab)...)
	return candidates
}

// sentenceCandidates returns whitespace-normalized sentences that
// contain at least one vocabulary keyword, kept when their length is
// within [minSentenceLen, maxSentenceLen].
func sentenceCandidates(text string, vocab Vocabulary) []string {
	var candidates []string
	for _, sentence := range sentenceSplitRE.Split(text, -1) {
		lower := strings.ToLower(sentence)
		if !containsKeyword(lower, vocab) {
			continue
		}
		clean := strings.TrimSpace(whitespaceRE.ReplaceAllString(sentence, " "))
		if n := utf8.RuneCountInString(clean); n >= minSentenceLen && n <= maxSentenceLen {
			candidates = append(candidates, clean)
		}
	}
	return candidates
}

// wordCandidates returns word tokens whose lowercase form contains a
// vocabulary keyword, kept in their original casing when longer than
// three characters and not purely numeric.
func wordCandidates(text string, vocab Vocabulary) []string {
	var candidates []string
	for _, word := range wordRE.FindAllString(text, -1) {
		if !containsKeyword(strings.ToLower(word), vocab) {
			continue
		}
		if utf8.RuneCountInString(word) >= minWordLen && !isNumeric(word) {
			candidates = append(candidates, word)
		}
	}
	return candidates
}

func containsKeyword(lower string, vocab Vocabulary) bool {
	for _, keyword := range vocab {
		if utf8.RuneCountInString(keyword) >= minKeywordLen && strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
