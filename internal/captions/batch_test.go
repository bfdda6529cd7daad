package captions

import (
	"math/rand"
	"testing"
)

func wt(word string, start, end float64) WordTimestamp {
	return WordTimestamp{Word: word, Start: start, End: end}
}

func TestBuildBatchesSentenceBoundary(t *testing.T) {
	words := []WordTimestamp{
		wt("the", 0, 0.2),
		wt("cat.", 0.2, 0.5),
		wt("sat", 0.5, 0.7),
	}

	batches := BuildBatches(words, 5)
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if len(batches[0].Words) != 2 || batches[0].Words[1].Word != "cat." {
		t.Errorf("first batch should stop at sentence boundary, got %+v", batches[0].Words)
	}
	if len(batches[1].Words) != 1 || batches[1].Words[0].Word != "sat" {
		t.Errorf("second batch should hold the remainder, got %+v", batches[1].Words)
	}
}

func TestBuildBatchesLimit(t *testing.T) {
	words := []WordTimestamp{
		wt("one", 0, 1), wt("two", 1, 2), wt("three", 2, 3),
		wt("four", 3, 4), wt("five", 4, 5),
	}

	batches := BuildBatches(words, 2)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	for i, want := range []int{2, 2, 1} {
		if len(batches[i].Words) != want {
			t.Errorf("batch %d: expected %d words, got %d", i, want, len(batches[i].Words))
		}
	}
}

func TestBuildBatchesLegacyMode(t *testing.T) {
	words := []WordTimestamp{wt("a.", 0, 1), wt("b", 1, 2), wt("c!", 2, 3)}

	batches := BuildBatches(words, 0)
	if len(batches) != 1 {
		t.Fatalf("wordsPerBatch=0 should yield one whole-track batch, got %d", len(batches))
	}
	if batches[0].StartIndex != 0 || batches[0].EndIndex != 3 {
		t.Errorf("whole-track batch bounds wrong: %d..%d", batches[0].StartIndex, batches[0].EndIndex)
	}
}

func TestBuildBatchesEmpty(t *testing.T) {
	if got := BuildBatches(nil, 4); got != nil {
		t.Errorf("empty input should produce no batches, got %v", got)
	}
}

// Batches must partition the input exactly: contiguous, non-overlapping,
// every word exactly once, for arbitrary batch sizes and terminator
// placement.
func TestBuildBatchesPartitionProperty(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 1 + r.Intn(40)
		words := make([]WordTimestamp, n)
		for i := range words {
			w := "word"
			switch r.Intn(5) {
			case 0:
				w = "word."
			case 1:
				w = "word!"
			case 2:
				w = "word?"
			}
			words[i] = wt(w, float64(i), float64(i)+0.5)
		}
		perBatch := 1 + r.Intn(8)

		batches := BuildBatches(words, perBatch)

		cursor := 0
		for _, b := range batches {
			if b.StartIndex != cursor {
				t.Fatalf("trial %d: batch starts at %d, expected %d", trial, b.StartIndex, cursor)
			}
			if len(b.Words) == 0 || len(b.Words) > perBatch {
				t.Fatalf("trial %d: batch size %d out of range 1..%d", trial, len(b.Words), perBatch)
			}
			for j, w := range b.Words {
				if w != words[b.StartIndex+j] {
					t.Fatalf("trial %d: word mismatch at index %d", trial, b.StartIndex+j)
				}
			}
			cursor = b.EndIndex
		}
		if cursor != n {
			t.Fatalf("trial %d: batches cover %d of %d words", trial, cursor, n)
		}
	}
}

func TestSentenceEnd(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"cat.", true},
		{"what?", true},
		{"go!", true},
		{`done."`, true},
		{"plain", false},
		{"semi;", false},
		{"", false},
		{`"`, false},
	}
	for _, tt := range tests {
		if got := SentenceEnd(tt.word); got != tt.want {
			t.Errorf("SentenceEnd(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestAlignPunctuation(t *testing.T) {
	words := []WordTimestamp{wt("the", 0, 1), wt("cat", 1, 2), wt("sat", 2, 3)}

	aligned := AlignPunctuation(words, "The cat. Sat")
	if aligned[1].Word != "cat." {
		t.Errorf("expected punctuation carried over, got %q", aligned[1].Word)
	}
	if aligned[1].Start != 1 || aligned[1].End != 2 {
		t.Error("alignment must not disturb timings")
	}

	// Mismatched token counts leave the track untouched.
	same := AlignPunctuation(words, "a completely different sentence here")
	if same[0].Word != "the" {
		t.Error("mismatched reference text should be ignored")
	}
}

func TestApplyTransform(t *testing.T) {
	s := DefaultStyle()

	s.TextTransform = TransformUppercase
	if s.ApplyTransform("cat.") != "CAT." {
		t.Error("uppercase transform failed")
	}
	s.TextTransform = TransformCapitalize
	if s.ApplyTransform("heLLo") != "Hello" {
		t.Error("capitalize transform failed")
	}
	s.TextTransform = TransformNone
	if s.ApplyTransform("AsIs") != "AsIs" {
		t.Error("none transform should pass through")
	}
}
