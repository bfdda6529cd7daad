// Package captions groups word-level speech timings into the display
// batches a subtitle track is built from.
package captions

import "strings"

// WordTimestamp is one aligned word from the upstream speech pipeline.
// Times are seconds from scene start; End > Start by contract. The
// engine never mutates these.
type WordTimestamp struct {
	Word  string  `yaml:"word" json:"word"`
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
}

// SentenceEnd reports whether a word closes a sentence. Trailing quotes
// and brackets are skipped so `sat."` still terminates.
func SentenceEnd(word string) bool {
	trimmed := strings.TrimRight(word, `"')]`)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

// AlignPunctuation copies punctuation from the reference narration text
// onto the timed words. Alignment output often strips punctuation while
// the narration text keeps it; both sides tokenize on whitespace here,
// in one shared pass, so sentence detection and display text can never
// disagree about word indices.
func AlignPunctuation(words []WordTimestamp, referenceText string) []WordTimestamp {
	if referenceText == "" {
		return words
	}

	tokens := strings.Fields(referenceText)
	if len(tokens) != len(words) {
		// Token count mismatch means the reference text is not a clean
		// transcript of the track; keep the aligned words untouched.
		return words
	}

	out := make([]WordTimestamp, len(words))
	for i, w := range words {
		out[i] = w
		out[i].Word = tokens[i]
	}
	return out
}
