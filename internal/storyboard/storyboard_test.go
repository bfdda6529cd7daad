package storyboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/scene2video/internal/captions"
)

func validBoard() *Storyboard {
	return &Storyboard{
		Version: "1.0",
		Width:   1080,
		Height:  1920,
		FPS:     30,
		Scenes: []Scene{
			{ID: 1, Image: "scene1.png", Duration: 4.0, Effect: "zoom_in"},
			{ID: 2, Image: "scene2.png", Effect: "pan_left", Words: []captions.WordTimestamp{
				{Word: "hello", Start: 0, End: 0.4},
				{Word: "there.", Start: 0.4, End: 0.9},
			}},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.yaml")

	if err := Write(validBoard(), path); err != nil {
		t.Fatal(err)
	}

	sb, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sb.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(sb.Scenes))
	}
	if sb.Scenes[1].Words[1].Word != "there." {
		t.Errorf("word track did not survive the round trip: %+v", sb.Scenes[1].Words)
	}
}

func TestValidateRejectsBrokenBoards(t *testing.T) {
	cases := map[string]func(*Storyboard){
		"zero width":       func(sb *Storyboard) { sb.Width = 0 },
		"zero fps":         func(sb *Storyboard) { sb.FPS = 0 },
		"no scenes":        func(sb *Storyboard) { sb.Scenes = nil },
		"missing image":    func(sb *Storyboard) { sb.Scenes[0].Image = "" },
		"no duration hint": func(sb *Storyboard) { sb.Scenes[0].Duration = 0 },
		"inverted timing": func(sb *Storyboard) {
			sb.Scenes[1].Words[0] = captions.WordTimestamp{Word: "x", Start: 1, End: 0.5}
		},
	}

	for name, mutate := range cases {
		sb := validBoard()
		mutate(sb)
		if err := sb.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}

	if err := validBoard().Validate(); err != nil {
		t.Errorf("valid board rejected: %v", err)
	}
}

func TestEffectiveDuration(t *testing.T) {
	sc := &Scene{Duration: 3.5}
	if got := sc.EffectiveDuration(0.5); got != 3.5 {
		t.Errorf("explicit duration wins, got %f", got)
	}

	sc = &Scene{Words: []captions.WordTimestamp{{Word: "end", Start: 1.0, End: 2.2}}}
	if got := sc.EffectiveDuration(0.5); got != 2.7 {
		t.Errorf("derived duration should be last word end + tail, got %f", got)
	}
}

func TestResolveWordsFromFile(t *testing.T) {
	dir := t.TempDir()
	wordsJSON := `[{"word":"the","start":0,"end":0.2},{"word":"cat","start":0.2,"end":0.5}]`
	if err := os.WriteFile(filepath.Join(dir, "scene.words.json"), []byte(wordsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	sc := &Scene{WordsFile: "scene.words.json", NarrationText: "The cat."}
	words, err := sc.ResolveWords(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	// Punctuation from the narration text lands on the aligned track.
	if words[1].Word != "cat." {
		t.Errorf("expected punctuation alignment, got %q", words[1].Word)
	}
}

func TestResolveWordsWrappedDocument(t *testing.T) {
	dir := t.TempDir()
	wordsJSON := `{"words":[{"word":"solo","start":0.5,"end":0.9}]}`
	if err := os.WriteFile(filepath.Join(dir, "w.json"), []byte(wordsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	sc := &Scene{WordsFile: "w.json"}
	words, err := sc.ResolveWords(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0].Word != "solo" {
		t.Errorf("wrapped document not parsed: %+v", words)
	}
}

func TestResolveWordsNone(t *testing.T) {
	sc := &Scene{}
	words, err := sc.ResolveWords(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if words != nil {
		t.Errorf("scene without a track should resolve to nil, got %+v", words)
	}
}

func TestResolveWordsSortsByStart(t *testing.T) {
	sc := &Scene{Words: []captions.WordTimestamp{
		{Word: "b", Start: 0.5, End: 0.9},
		{Word: "a", Start: 0.0, End: 0.4},
	}}
	words, err := sc.ResolveWords("")
	if err != nil {
		t.Fatal(err)
	}
	if words[0].Word != "a" || words[1].Word != "b" {
		t.Errorf("words should be ordered by start: %+v", words)
	}
}
