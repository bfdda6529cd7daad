package storyboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ivlev/scene2video/internal/captions"
)

// wordsDocument matches the JSON the speech alignment step emits: either
// a bare array of words or an object wrapping one.
type wordsDocument struct {
	Words []captions.WordTimestamp `json:"words"`
}

// ResolveWords returns the scene's caption track, loading WordsFile
// (relative to the storyboard's directory) when the words are not
// inline. Punctuation from the narration text is aligned onto the track
// and the result is ordered by start time.
func (sc *Scene) ResolveWords(storyboardDir string) ([]captions.WordTimestamp, error) {
	words := sc.Words

	if len(words) == 0 && sc.WordsFile != "" {
		path := sc.WordsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(storyboardDir, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("words file: %w", err)
		}

		if err := json.Unmarshal(data, &words); err != nil {
			var doc wordsDocument
			if err2 := json.Unmarshal(data, &doc); err2 != nil {
				return nil, fmt.Errorf("parse words file %s: %w", path, err)
			}
			words = doc.Words
		}
	}

	if len(words) == 0 {
		return nil, nil
	}

	sorted := make([]captions.WordTimestamp, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	return captions.AlignPunctuation(sorted, sc.NarrationText), nil
}
