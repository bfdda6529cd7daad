package captions

// Batch is a contiguous run of words shown on screen together, with one
// word highlighted as active at a time. StartIndex/EndIndex are the
// half-open bounds into the original word sequence.
type Batch struct {
	Words      []WordTimestamp
	StartIndex int
	EndIndex   int
}

// BuildBatches partitions the word sequence into display batches of at
// most wordsPerBatch words. A batch ends early when a word closes a
// sentence, so a short phrase never bleeds into the next sentence's
// caption. wordsPerBatch == 0 is the legacy whole-track mode: a single
// batch covering every word.
//
// Batches are contiguous, non-overlapping, and cover the input exactly
// once in original order.
func BuildBatches(words []WordTimestamp, wordsPerBatch int) []Batch {
	if len(words) == 0 {
		return nil
	}

	if wordsPerBatch <= 0 {
		return []Batch{{Words: words, StartIndex: 0, EndIndex: len(words)}}
	}

	var batches []Batch
	start := 0
	for i := range words {
		full := i-start+1 >= wordsPerBatch
		if full || SentenceEnd(words[i].Word) {
			batches = append(batches, Batch{
				Words:      words[start : i+1],
				StartIndex: start,
				EndIndex:   i + 1,
			})
			start = i + 1
		}
	}
	if start < len(words) {
		batches = append(batches, Batch{
			Words:      words[start:],
			StartIndex: start,
			EndIndex:   len(words),
		})
	}
	return batches
}

// BatchFor returns the batch containing the given word index. Callers
// pass indices obtained from the same word sequence, so a miss is a
// programming error and yields the last batch rather than a panic.
func BatchFor(batches []Batch, wordIndex int) Batch {
	for _, b := range batches {
		if wordIndex >= b.StartIndex && wordIndex < b.EndIndex {
			return b
		}
	}
	return batches[len(batches)-1]
}
